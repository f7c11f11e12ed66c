package reasoner

import "github.com/tailored-agentic-units/reasoner/observability"

// Reasoner event types emitted during the reasoning script.
const (
	EventRunStart      observability.EventType = "reasoner.run.start"
	EventRunComplete   observability.EventType = "reasoner.run.complete"
	EventParseRetry    observability.EventType = "reasoner.parse.retry"
	EventStepsParsed   observability.EventType = "reasoner.steps.parsed"
	EventStepStart     observability.EventType = "reasoner.step.start"
	EventExecComplete  observability.EventType = "reasoner.exec.complete"
	EventExecRetry     observability.EventType = "reasoner.exec.retry"
	EventStepAbandoned observability.EventType = "reasoner.step.abandoned"
	EventError         observability.EventType = "reasoner.error"
)
