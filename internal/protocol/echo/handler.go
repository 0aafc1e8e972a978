package echo

// Disposition tells the connection handler what to do once a request has
// been processed.
type Disposition int

const (
	// Respond means a response frame must be written back.
	Respond Disposition = iota

	// Ignore means the request produced no response and the connection
	// stays open. Used for unknown command codes.
	Ignore

	// Close means the peer asked to terminate; no response is written
	// and the connection is closed.
	Close
)

// Result is the outcome of processing one request. Command and Payload
// are only meaningful when Disposition is Respond.
type Result struct {
	Disposition Disposition
	Command     byte
	Payload     []byte
}

// Process maps one request to its outcome. It is a pure function: no
// I/O, no state, no side effects.
//
// Responses are always labeled CmdEcho, even when replying to a reverse
// request. The response command field deliberately does not mirror the
// request's command; changing this would break wire compatibility with
// existing peers.
func Process(command byte, payload []byte) Result {
	switch command {
	case CmdEcho:
		return Result{Disposition: Respond, Command: CmdEcho, Payload: payload}
	case CmdReverse:
		return Result{Disposition: Respond, Command: CmdEcho, Payload: reverse(payload)}
	case CmdQuit:
		return Result{Disposition: Close}
	default:
		return Result{Disposition: Ignore}
	}
}

// reverse reverses the payload character by character rather than byte by
// byte, so multi-byte UTF-8 sequences stay intact. Bytes that do not form
// valid UTF-8 decode best-effort to the replacement rune.
func reverse(payload []byte) []byte {
	runes := []rune(string(payload))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return []byte(string(runes))
}
