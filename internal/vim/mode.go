package vim

// Mode is the value of vim's mode(1).
type Mode string

const (
	ModeNormal     Mode = "n"
	ModeInsert     Mode = "i"
	ModeVisual     Mode = "v"
	ModeVisualLine Mode = "V"
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeVisual:
		return "visual"
	case ModeVisualLine:
		return "visual line"
	default:
		return string(m)
	}
}

// cmdlineKeys are typed around a command to reach the command line from a
// mode and to return to that mode afterwards.
type cmdlineKeys struct {
	prefix string
	suffix string
}

var cmdlineByMode = map[Mode]cmdlineKeys{
	ModeNormal:     {prefix: ":"},
	ModeInsert:     {prefix: "<c-o>:"},
	ModeVisual:     {prefix: ":<c-w>", suffix: "gv"},
	ModeVisualLine: {prefix: ":<c-w>", suffix: "gv"},
}

var cmdlineFallback = cmdlineKeys{prefix: "<esc>:"}

func (m Mode) cmdline() cmdlineKeys {
	if k, ok := cmdlineByMode[m]; ok {
		return k
	}
	return cmdlineFallback
}
