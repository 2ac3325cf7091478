package interfaces

// SendOptions control message formatting at the transport.
type SendOptions struct {
	HTML          bool // rich-text (HTML) parse mode
	NoLinkPreview bool // suppress link previews
}

// Choice is one selectable button: a visible label and the opaque callback
// token it carries.
type Choice struct {
	Label string
	Token string
}

// Sender is the outbound boundary. Implementations must swallow transport
// delivery failures (log and continue) — they never crash the event handler.
type Sender interface {
	SendText(chatID int64, text string, opts SendOptions) error
	SendChoice(chatID int64, text string, rows [][]Choice) error
	SendDocument(chatID int64, data []byte, filename string) error
}

// Renderer maps a template body plus a key->value mapping to rendered output
// bytes. A malformed body or a missing substitution is an error; there is no
// partial output.
type Renderer interface {
	Render(body string, data map[string]string) ([]byte, error)
}
