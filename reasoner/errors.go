package reasoner

import "errors"

// ErrStepParse is returned by Run when the model never produces a
// parseable step list within the retry budget.
var ErrStepParse = errors.New("failed to parse steps from the assistant's response")
