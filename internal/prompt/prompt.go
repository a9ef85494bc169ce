// Package prompt asks an athlete for the inputs of a plan on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/onerm"
)

// ErrNoInput is returned when input ends before every question is answered.
var ErrNoInput = errors.New("input ended")

// Line separates prompt sections.
var Line = strings.Repeat("*", 79)

// Prompter reads answers line by line.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// ReadAthlete asks for a name, a max for each of lifts and whether to make
// small jumps. Invalid maxes are asked again.
func ReadAthlete(in io.Reader, out io.Writer, lifts []string) (models.Athlete, error) {
	return New(in, out).Athlete(lifts)
}

func (p *Prompter) Athlete(lifts []string) (models.Athlete, error) {
	a := models.Athlete{Maxes: make(map[string]models.MaxInput, len(lifts))}

	for a.Name == "" {
		name, err := p.ask("Enter name: ")
		if err != nil {
			return a, err
		}
		a.Name = name
	}
	fmt.Fprintln(p.out, Line)
	fmt.Fprintln(p.out, "Input PR lift values. If a 1RM is not known, enter a rep max like this '5x300' and it will be estimated.")

	for _, lift := range lifts {
		for {
			raw, err := p.ask(fmt.Sprintf("Enter %s 1RM: ", lift))
			if err != nil {
				return a, err
			}
			pr, err := onerm.Parse(raw)
			if err != nil {
				fmt.Fprintf(p.out, "Could not read %q, try again.\n", raw)
				continue
			}
			if strings.ContainsAny(raw, "xX") {
				fmt.Fprintf(p.out, "%s 1RM: %g\n", lift, pr)
			}
			a.Maxes[lift] = models.MaxInput(raw)
			break
		}
	}

	light, err := p.confirm("Make small jumps? [y/N]: ")
	if err != nil {
		return a, err
	}
	a.Light = light
	return a, nil
}

func (p *Prompter) confirm(question string) (bool, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "", "n", "no":
			return false, nil
		case "y", "yes":
			return true, nil
		}
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
