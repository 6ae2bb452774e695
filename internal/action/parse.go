package action

import (
	"strconv"

	"github.com/divijg19/todo/internal/core"
)

type verb int

const (
	verbUnknown verb = iota
	verbHelp
	verbList
	verbAdd
	verbDone
	verbDrop
)

// verbs maps each accepted token to its verb. "show" is an alias of "list".
var verbs = map[string]verb{
	"help": verbHelp,
	"list": verbList,
	"show": verbList,
	"add":  verbAdd,
	"done": verbDone,
	"drop": verbDrop,
}

// filters maps the list filter tokens to states. Matching is case-sensitive.
var filters = map[string]core.State{
	"all":  core.StateAll,
	"todo": core.StatePending,
	"done": core.StateDone,
	"drop": core.StateDropped,
}

// Parse interprets args (without the program name) as exactly one Action.
// Only the verb and the first argument after it are considered.
func Parse(args []string) (Action, error) {
	if len(args) == 0 {
		return nil, core.Fail(core.ErrMissingVerb, "", nil)
	}

	token := args[0]
	arg, hasArg := "", false
	if len(args) > 1 {
		arg, hasArg = args[1], true
	}

	switch verbs[token] {
	case verbHelp:
		return Help{}, nil

	case verbList:
		if !hasArg {
			return List{Filter: core.StatePending}, nil
		}
		state, ok := filters[arg]
		if !ok {
			return nil, core.Fail(core.ErrUnknownFilter, arg, nil)
		}
		return List{Filter: state}, nil

	case verbAdd:
		if !hasArg {
			return nil, core.Fail(core.ErrMissingArgument, "", nil)
		}
		return Add{Description: arg}, nil

	case verbDone, verbDrop:
		if !hasArg {
			return nil, core.Fail(core.ErrMissingArgument, "", nil)
		}
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		if verbs[token] == verbDone {
			return Done{ID: id}, nil
		}
		return Drop{ID: id}, nil

	default:
		return nil, core.Fail(core.ErrUnknownAction, token, nil)
	}
}

// parseID accepts base-10 digits fitting in 32 bits. Signs, fractions and
// overflow are all reported as ErrNotANumber.
func parseID(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, core.Fail(core.ErrNotANumber, s, err)
	}
	return uint32(n), nil
}
