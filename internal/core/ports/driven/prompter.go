package driven

// Prompter provides text input and message display for the user.
type Prompter interface {
	// Prompt asks the user for text, pre-filled with defaultValue, and
	// reports the answer through done. ok is false when the user cancels.
	// Synchronous implementations call done before returning; event-loop
	// implementations call it from the loop once the user answers.
	Prompt(message, defaultValue string, done func(text string, ok bool))

	// Alert shows a message to the user.
	Alert(message string)
}
