package cli

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewCLIPrompter(strings.NewReader(input), &out), &out
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "sure\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, out := newTestPrompter(tt.input)

			got, err := p.Confirm(context.Background(), "Are you sure you want to delete this record?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "(y/N)")
		})
	}
}

func TestPrompter_Choose(t *testing.T) {
	options := []string{"HB851", "HB852", "HB853"}

	t.Run("by number", func(t *testing.T) {
		p, _ := newTestPrompter("2\n")
		got, err := p.Choose(context.Background(), "Series", options)
		require.NoError(t, err)
		assert.Equal(t, "HB852", got)
	})

	t.Run("by name", func(t *testing.T) {
		p, _ := newTestPrompter("HB853\n")
		got, err := p.Choose(context.Background(), "Series", options)
		require.NoError(t, err)
		assert.Equal(t, "HB853", got)
	})

	t.Run("asks again after invalid input", func(t *testing.T) {
		p, out := newTestPrompter("9\nnope\n1\n")
		got, err := p.Choose(context.Background(), "Series", options)
		require.NoError(t, err)
		assert.Equal(t, "HB851", got)
		assert.Equal(t, 2, strings.Count(out.String(), "Enter a number between 1 and 3."))
	})

	t.Run("no options", func(t *testing.T) {
		p, _ := newTestPrompter("")
		_, err := p.Choose(context.Background(), "Series", nil)
		assert.ErrorIs(t, err, ErrNoChoice)
	})
}

func TestPrompter_FillSaleForm(t *testing.T) {
	t.Run("suggested country", func(t *testing.T) {
		p, _ := newTestPrompter("1\nJapan\nAcme\n")

		form, err := p.FillSaleForm(context.Background(), []string{"HB851"})
		require.NoError(t, err)
		assert.Equal(t, "HB851", form.Series)
		assert.Equal(t, "Japan", form.EffectiveCountry())
		assert.Equal(t, "Acme", form.Customer)
	})

	t.Run("custom country", func(t *testing.T) {
		other := len(model.CommonCountries) + 1
		input := "1\n" + strconv.Itoa(other) + "\nAtlantis\nClient A\n"
		p, _ := newTestPrompter(input)

		form, err := p.FillSaleForm(context.Background(), []string{"HB851"})
		require.NoError(t, err)
		assert.True(t, form.UseCustomCountry)
		assert.Equal(t, "Atlantis", form.EffectiveCountry())
	})

	t.Run("no products", func(t *testing.T) {
		p, _ := newTestPrompter("")
		_, err := p.FillSaleForm(context.Background(), nil)
		assert.EqualError(t, err, workflow.MsgNoProducts)
	})
}

func TestPrompter_ShowNotification(t *testing.T) {
	p, out := newTestPrompter("")

	require.NoError(t, p.ShowNotification(workflow.Notification{
		Kind:    workflow.KindSuccess,
		Message: "Recorded: HB851 sold to Japan (Acme)",
		Warning: "could not be saved",
	}))

	assert.Contains(t, out.String(), "Recorded: HB851 sold to Japan (Acme)")
	assert.Contains(t, out.String(), "could not be saved")
}
