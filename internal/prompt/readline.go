package prompt

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/text"
)

// lineReader is the part of *readline.Instance the prompts use.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Readline implements Prompter on top of a readline terminal.
type Readline struct {
	lines lineReader
	out   io.Writer
}

// NewReadline creates a terminal prompter writing menus to out.
// History is disabled so typed ids and tokens never end up on disk.
func NewReadline(out io.Writer) (*Readline, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "> ",
		Stdout:                 out,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &Readline{lines: rl, out: out}, nil
}

// Close releases the terminal.
func (r *Readline) Close() error {
	return r.lines.Close()
}

func (r *Readline) readLine(prompt string) (string, error) {
	r.lines.SetPrompt(prompt)
	line, err := r.lines.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", fmt.Errorf("readline error: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (r *Readline) printQuestion(message string) {
	fmt.Fprintf(r.out, "%s %s\n", text.FgGreen.Sprint("?"), message)
}

func (r *Readline) printInvalid(message string) {
	fmt.Fprintln(r.out, text.FgRed.Sprint(">> "+message))
}

// Select prints the choices as a numbered menu. Answers may be a number, the
// exact name of a choice, or empty for the default. Long menus are paged with
// ">" and "<".
func (r *Readline) Select(q SelectQuestion) (int, error) {
	var selectable []int
	numbers := make(map[int]int, len(q.Choices))
	for i, c := range q.Choices {
		if c.Separator {
			continue
		}
		selectable = append(selectable, i)
		numbers[i] = len(selectable)
	}
	if len(selectable) == 0 {
		return -1, errors.New("select prompt has no selectable choices")
	}

	def := q.Default
	if def < 0 || def >= len(q.Choices) || q.Choices[def].Separator {
		def = selectable[0]
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (len(q.Choices) + pageSize - 1) / pageSize
	page := def / pageSize

	for {
		r.printQuestion(q.Message)
		start := page * pageSize
		end := min(start+pageSize, len(q.Choices))
		for i := start; i < end; i++ {
			c := q.Choices[i]
			if c.Separator {
				fmt.Fprintf(r.out, "      %s\n", c.Name)
				continue
			}
			marker := "  "
			if i == def {
				marker = text.FgCyan.Sprint("❯ ")
			}
			fmt.Fprintf(r.out, "%s%3d) %s\n", marker, numbers[i], c.Name)
		}
		if pages > 1 {
			fmt.Fprintf(r.out, "  (page %d/%d, enter > for next page, < for previous page)\n", page+1, pages)
		}

		answer, err := r.readLine(fmt.Sprintf("Choice [%d]: ", numbers[def]))
		if err != nil {
			return -1, err
		}

		switch answer {
		case "":
			return def, nil
		case ">":
			if page < pages-1 {
				page++
			}
			continue
		case "<":
			if page > 0 {
				page--
			}
			continue
		}

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(selectable) {
			return selectable[n-1], nil
		}
		for _, i := range selectable {
			if strings.EqualFold(q.Choices[i].Name, answer) {
				return i, nil
			}
		}
		r.printInvalid(fmt.Sprintf("Please enter a number between 1 and %d.", len(selectable)))
	}
}

// MultiSelect prints the choices with their checked state. The answer is a
// comma separated list of numbers; empty keeps the current selection and
// "none" clears it.
func (r *Readline) MultiSelect(q MultiSelectQuestion) ([]int, error) {
	checked := make([]int, 0, len(q.Choices))
	for i := range q.Choices {
		if i < len(q.Checked) && q.Checked[i] {
			checked = append(checked, i)
		}
	}

	for {
		r.printQuestion(q.Message)
		for i, name := range q.Choices {
			box := "[ ]"
			if slices.Contains(checked, i) {
				box = "[x]"
			}
			fmt.Fprintf(r.out, "  %s %3d) %s\n", box, i+1, name)
		}

		answer, err := r.readLine("Numbers (comma separated, empty keeps selection, none clears): ")
		if err != nil {
			return nil, err
		}

		selected, perr := parseSelection(answer, checked, len(q.Choices))
		if perr != nil {
			r.printInvalid(perr.Error())
			continue
		}
		if q.Validate != nil {
			if verr := q.Validate(selected); verr != nil {
				r.printInvalid(verr.Error())
				continue
			}
		}
		return selected, nil
	}
}

func parseSelection(answer string, current []int, count int) ([]int, error) {
	switch strings.ToLower(answer) {
	case "":
		return slices.Clone(current), nil
	case "none":
		return []int{}, nil
	}

	var selected []int
	for _, field := range strings.Split(answer, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > count {
			return nil, fmt.Errorf("%q is not a number between 1 and %d.", field, count)
		}
		if !slices.Contains(selected, n-1) {
			selected = append(selected, n-1)
		}
	}
	slices.Sort(selected)
	return selected, nil
}

// Input reads one line of text, falling back to the default on an empty answer.
func (r *Readline) Input(q InputQuestion) (string, error) {
	prompt := fmt.Sprintf("%s %s: ", text.FgGreen.Sprint("?"), q.Message)
	if q.Default != "" {
		prompt = fmt.Sprintf("%s %s (%s): ", text.FgGreen.Sprint("?"), q.Message, q.Default)
	}

	for {
		answer, err := r.readLine(prompt)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if verr := q.Validate(answer); verr != nil {
				r.printInvalid(verr.Error())
				continue
			}
		}
		return answer, nil
	}
}

// Confirm asks a yes/no question.
func (r *Readline) Confirm(message string, defaultAnswer bool) (bool, error) {
	hint := "y/N"
	if defaultAnswer {
		hint = "Y/n"
	}
	prompt := fmt.Sprintf("%s %s (%s): ", text.FgGreen.Sprint("?"), message, hint)

	for {
		answer, err := r.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultAnswer, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		r.printInvalid("Please answer yes or no.")
	}
}
