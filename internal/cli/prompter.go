package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
)

// ErrNoChoice is returned when a selection prompt has no options.
var ErrNoChoice = errors.New("nothing to choose from")

// Prompter asks questions on a terminal.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatWarning(question)+" (y/N): "); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// PromptString reads one line of free text.
func (p *Prompter) PromptString(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

// Choose shows a numbered list and returns the picked option. The answer may
// be the number or the exact option text. Invalid answers are asked again.
func (p *Prompter) Choose(ctx context.Context, label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoChoice
	}

	if _, err := fmt.Fprintln(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	for i, opt := range options {
		if _, err := fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, opt); err != nil {
			return "", fmt.Errorf("failed to write option: %w", err)
		}
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Choice")); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
		answer, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if opt == answer {
				return opt, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatError(fmt.Sprintf("Enter a number between 1 and %d.", len(options)))); err != nil {
			return "", fmt.Errorf("failed to write error: %w", err)
		}
	}
}

// FillSaleForm walks through the sale entry fields. Choosing
// model.OtherCountry asks for the country by name.
func (p *Prompter) FillSaleForm(ctx context.Context, products []string) (workflow.Form, error) {
	var form workflow.Form
	if len(products) == 0 {
		return form, errors.New(workflow.MsgNoProducts)
	}

	series, err := p.Choose(ctx, "Series", products)
	if err != nil {
		return form, err
	}
	form.Series = series

	countries := append(append([]string{}, model.CommonCountries...), model.OtherCountry)
	country, err := p.Choose(ctx, "Country", countries)
	if err != nil {
		return form, err
	}
	form.SelectCountry(country)

	if form.UseCustomCountry {
		custom, err := p.PromptString(ctx, "Country name")
		if err != nil {
			return form, err
		}
		form.CustomCountry = custom
	}

	customer, err := p.PromptString(ctx, "Customer name/abbreviation")
	if err != nil {
		return form, err
	}
	form.Customer = customer

	return form, nil
}

// ShowNotification prints a workflow notification with its warning, if any.
func (p *Prompter) ShowNotification(n workflow.Notification) error {
	msg := FormatSuccess(n.Message)
	if n.IsError() {
		msg = FormatError(n.Message)
	}
	if n.Warning != "" {
		msg += "\n" + FormatWarning(n.Warning)
	}
	_, err := fmt.Fprintln(p.writer, msg)
	return err
}
