package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplacePlaceholders(t *testing.T) {
	text := "This deed is made by #1, residing at #2."
	answers := map[string]string{"1": "Jane Doe", "2": "14 Harbor Lane"}

	assert.Equal(t, "This deed is made by Jane Doe, residing at 14 Harbor Lane.", ReplacePlaceholders(text, answers))
}

func TestReplacePlaceholdersMultiDigitFirst(t *testing.T) {
	// "#12" has to be replaced before "#1", otherwise the answer for "1"
	// swallows the prefix and leaves a stray "2" behind.
	text := "Witness #1 and witness #12 both sign."
	answers := map[string]string{"1": "Alice", "12": "Bob"}

	assert.Equal(t, "Witness Alice and witness Bob both sign.", ReplacePlaceholders(text, answers))
}

func TestReplacePlaceholdersIgnoresNonNumericKeys(t *testing.T) {
	text := "Party: #1, Form: #form_id"
	answers := map[string]string{"1": "Jane", "form_id": "17"}

	assert.Equal(t, "Party: Jane, Form: #form_id", ReplacePlaceholders(text, answers))
}

func TestReplacePlaceholdersRepeatedPlaceholder(t *testing.T) {
	text := "#1 agrees. #1 signs."
	answers := map[string]string{"1": "Jane"}

	assert.Equal(t, "Jane agrees. Jane signs.", ReplacePlaceholders(text, answers))
}

func TestNumericKeysDescending(t *testing.T) {
	answers := map[string]string{"2": "b", "10": "j", "1": "a", "notes": "x"}
	assert.Equal(t, []int{10, 2, 1}, numericKeys(answers))
}
