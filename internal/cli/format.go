package cli

import (
	"strconv"
	"strings"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// parseID reads a positive numeric id argument
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage("invalid %s id %q", what, arg)
	}
	return id, nil
}

// parseIDs reads every argument as an id
func parseIDs(args []string, what string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg, what)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
