package jsonmaperr

type Action int8

const (
	Unknown Action = iota
	ReadField
	InvokeAccessor
)

func (a Action) String() string {
	actions := map[Action]string{
		Unknown:        "unknown",
		ReadField:      "read field",
		InvokeAccessor: "invoke accessor",
	}

	if str, ok := actions[a]; ok {
		return str
	}
	return "unknown"
}
