package echo

// Command codes carried in the frame header.
const (
	// CmdEcho requests the payload back unchanged. It is also the only
	// code ever used on a response.
	CmdEcho byte = 1

	// CmdReverse requests the payload with its characters reversed.
	CmdReverse byte = 2

	// CmdQuit asks the server to close the connection. No response is
	// sent for a quit.
	CmdQuit byte = 3
)
