// parse.go - Command Line Parsing
//
// Turns raw input lines ("git commit -m 'fix bug'") into Command
// values. Quoting follows shell rules closely enough for teaching:
// single or double quotes group spaces, --key=value splits on the
// first equals sign, and a short list of per-command options consume
// the following token as their value.

package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gitscape/gitscape/internal/git"
)

// valueOptions lists the flags that take the next token as a value.
// Everything else parses as a boolean switch. The table is per command
// because -m means "message" on commit but "move" on branch.
var valueOptions = map[string]map[string]bool{
	"commit":   {"m": true, "message": true},
	"merge":    {"m": true, "message": true},
	"tag":      {"m": true, "message": true},
	"checkout": {"b": true},
}

// Parse converts one input line into a Command with a fresh id and a
// current timestamp. A leading "git" token is tolerated and dropped.
func Parse(input string) (Command, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) > 0 && tokens[0] == "git" {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return Command{}, errors.New("empty command")
	}

	name := tokens[0]
	params := make(map[string]string)
	argn := 0
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, "-") || tok == "-" || tok == "--" {
			params[fmt.Sprintf("arg%d", argn)] = tok
			argn++
			continue
		}
		key := strings.TrimLeft(tok, "-")
		if eq := strings.IndexByte(key, '='); eq >= 0 {
			params[key[:eq]] = key[eq+1:]
			continue
		}
		if valueOptions[name][key] {
			if i+1 >= len(tokens) {
				return Command{}, fmt.Errorf("option -%s requires a value", key)
			}
			i++
			params[key] = tokens[i]
			continue
		}
		params[key] = "true"
	}

	return Command{
		ID:         uuid.NewString(),
		Type:       name,
		Parameters: params,
		Metadata:   Metadata{Timestamp: time.Now()},
	}, nil
}

// tokenize splits on whitespace while honoring quotes. Quote
// characters themselves are stripped; an unterminated quote is an
// error rather than a silent guess.
func tokenize(input string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	var quote byte
	inToken := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			inToken = true
		case ch == ' ' || ch == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(ch)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote in command")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// toParsed reshapes Command parameters for the engine: numbered argN
// keys become positional args in index order, the rest options.
func toParsed(cmd Command) git.ParsedCommand {
	parsed := git.ParsedCommand{Name: cmd.Type, Options: make(map[string]string)}
	type numbered struct {
		n   int
		val string
	}
	var args []numbered
	for k, v := range cmd.Parameters {
		if n, ok := argIndex(k); ok {
			args = append(args, numbered{n: n, val: v})
			continue
		}
		parsed.Options[k] = v
	}
	sort.Slice(args, func(i, j int) bool { return args[i].n < args[j].n })
	for _, a := range args {
		parsed.Args = append(parsed.Args, a.val)
	}
	return parsed
}

// argIndex extracts N from an "argN" parameter key.
func argIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, "arg") {
		return 0, false
	}
	n, err := strconv.Atoi(key[len("arg"):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
