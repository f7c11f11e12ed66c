// Package reasoner implements the fixed reasoning script that drives a
// chat model through plan-then-execute problem solving: seed the system
// prompt, ask the question, collect a step plan, work each step with
// optional Python execution, then request the final answer.
//
// The reasoner initializes from configuration via New, creating all
// subsystems internally. Functional options override any subsystem,
// mainly for tests.
//
//	r, err := reasoner.New(&cfg)
//	result, err := r.Run(ctx, "is 4 a perfect square?")
package reasoner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tailored-agentic-units/reasoner/agent"
	"github.com/tailored-agentic-units/reasoner/core/extract"
	"github.com/tailored-agentic-units/reasoner/core/protocol"
	"github.com/tailored-agentic-units/reasoner/observability"
	"github.com/tailored-agentic-units/reasoner/session"
	"github.com/tailored-agentic-units/reasoner/tools"
)

// Result holds the outcome of a reasoning Run.
type Result struct {
	Response   string            // Final text response from the model, verbatim.
	Answer     string            // Content of the final <answer> span, when present.
	Steps      []string          // Parsed step descriptions, in order.
	Executions []ExecutionRecord // Log of all snippet execution attempts.
}

// ExecutionRecord captures one snippet execution attempt.
type ExecutionRecord struct {
	Step    int    // 1-based index of the step the snippet came from.
	Attempt int    // 1-based attempt number within the retry loop.
	Output  string // Runner output as fed back into the session.
	IsError bool   // Whether the attempt counted as a failure.
}

// Runner abstracts snippet execution for testability. The default
// implementation is the tools package's Python runner.
type Runner interface {
	Execute(ctx context.Context, code string) tools.Result
}

// Option configures a Reasoner during initialization. Options are
// applied before config-driven construction, so a subsystem supplied
// here is used as-is and its config section is ignored.
type Option func(*Reasoner)

// WithAgent overrides the config-created agent.
func WithAgent(a agent.Agent) Option {
	return func(r *Reasoner) { r.agent = a }
}

// WithRegistry overrides the config-created agent registry.
func WithRegistry(reg *agent.Registry) Option {
	return func(r *Reasoner) { r.registry = reg }
}

// WithSession overrides the config-created session.
func WithSession(s session.Session) Option {
	return func(r *Reasoner) { r.session = s }
}

// WithRunner overrides the config-created Python runner.
func WithRunner(run Runner) Option {
	return func(r *Reasoner) { r.runner = run }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(r *Reasoner) { r.observer = o }
}

// Reasoner drives one model through the reasoning script. The session
// is its single source of truth: every outbound call sends the entire
// current history, and every turn is appended before the next call.
type Reasoner struct {
	agent           agent.Agent
	registry        *agent.Registry
	session         session.Session
	runner          Runner
	observer        observability.Observer
	sampling        protocol.Sampling
	maxParseRetries int
	maxExecRetries  int
}

// New creates a Reasoner from configuration. Options are applied
// first; any subsystem still missing afterwards is initialized from
// its config section. A fresh session is seeded with the system
// prompt.
func New(cfg *Config, opts ...Option) (*Reasoner, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}

	r := &Reasoner{
		sampling:        cfg.Agent.Sampling(),
		maxParseRetries: cfg.MaxParseRetries,
		maxExecRetries:  cfg.MaxExecRetries,
	}
	if r.maxParseRetries <= 0 {
		r.maxParseRetries = defaultMaxParseRetries
	}
	if r.maxExecRetries <= 0 {
		r.maxExecRetries = defaultMaxExecRetries
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.observer == nil {
		observer, err := resolveObservers(cfg.Observers)
		if err != nil {
			return nil, err
		}
		r.observer = observer
	}

	if r.agent == nil {
		a, err := agent.New(&cfg.Agent)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent: %w", err)
		}
		r.agent = a
	}

	if r.session == nil {
		r.session = session.NewMemory(&cfg.Session, session.WithObserver(r.observer))
	}

	if r.runner == nil {
		r.runner = tools.NewPython(&cfg.Python)
	}

	if r.registry == nil {
		reg := agent.NewRegistry()
		for name, agentCfg := range cfg.Agents {
			if err := reg.Register(name, agentCfg); err != nil {
				return nil, fmt.Errorf("failed to register agent %q: %w", name, err)
			}
		}
		r.registry = reg
	}

	if len(r.session.Messages()) == 0 {
		prompt := cfg.SystemPrompt
		if prompt == "" {
			prompt = SystemPrompt
		}
		r.session.AddMessage(protocol.NewMessage(protocol.RoleSystem, prompt))
	}

	return r, nil
}

// Registry returns the reasoner's agent registry.
func (r *Reasoner) Registry() *agent.Registry {
	return r.registry
}

// Run executes the reasoning script for the given question and returns
// the model's final response. The script is strictly linear: question,
// step planning (with bounded parse retries), one announce/respond
// round per step with optional snippet execution (bounded retries,
// non-fatal on exhaustion), then the final answer request. Snippet
// failures never abort the run; step-parse exhaustion, model call
// errors, and context cancellation do.
func (r *Reasoner) Run(ctx context.Context, question string) (*Result, error) {
	result := &Result{}

	r.observer.OnEvent(ctx, observability.NewEvent(
		EventRunStart, observability.LevelInfo, "reasoner.Run",
		map[string]any{
			"session_id":        r.session.ID(),
			"question_length":   len(question),
			"max_parse_retries": r.maxParseRetries,
			"max_exec_retries":  r.maxExecRetries,
		},
	))

	r.session.AddMessage(protocol.NewMessage(protocol.RoleUser, question))
	r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, StepsPrompt))

	steps, planResponse, err := r.requestSteps(ctx)
	if err != nil {
		return result, err
	}
	result.Steps = steps

	r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, planResponse))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := r.runStep(ctx, i+1, step, result); err != nil {
			return result, err
		}
	}

	r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, AnswerPrompt))

	final, err := r.agent.Chat(ctx, r.session.Messages(), r.sampling)
	if err != nil {
		return result, fmt.Errorf("model call failed: %w", err)
	}
	r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, final))

	result.Response = final
	if answer, ok := extract.Answer(final); ok {
		result.Answer = answer
	}

	r.observer.OnEvent(ctx, observability.NewEvent(
		EventRunComplete, observability.LevelInfo, "reasoner.Run",
		map[string]any{
			"steps":           len(result.Steps),
			"executions":      len(result.Executions),
			"response_length": len(result.Response),
		},
	))

	return result, nil
}

// requestSteps calls the model until a response with a parseable step
// list arrives, bounded by the retry budget. Failed attempts are not
// recorded in the session; only the parsed response is, by the caller.
func (r *Reasoner) requestSteps(ctx context.Context) ([]string, string, error) {
	for attempt := 1; attempt <= r.maxParseRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		response, err := r.agent.Chat(ctx, r.session.Messages(), r.sampling)
		if err != nil {
			return nil, "", fmt.Errorf("model call failed: %w", err)
		}

		if steps, ok := extract.Steps(response); ok {
			r.observer.OnEvent(ctx, observability.NewEvent(
				EventStepsParsed, observability.LevelVerbose, "reasoner.Run",
				map[string]any{"steps": len(steps), "attempt": attempt},
			))
			return steps, response, nil
		}

		r.observer.OnEvent(ctx, observability.NewEvent(
			EventParseRetry, observability.LevelVerbose, "reasoner.Run",
			map[string]any{"attempt": attempt, "max_attempts": r.maxParseRetries},
		))
	}

	r.observer.OnEvent(ctx, observability.NewEvent(
		EventError, observability.LevelWarning, "reasoner.Run",
		map[string]any{"error": "step parsing failed", "attempts": r.maxParseRetries},
	))

	return nil, "", ErrStepParse
}

// runStep announces one step, collects the model's work on it, and
// executes any embedded snippet with the bounded retry loop. Retries
// re-run the same captured snippet; the model is not re-asked between
// attempts. Exhausting the retries is reported into the session and
// the run moves on.
func (r *Reasoner) runStep(ctx context.Context, index int, step string, result *Result) error {
	r.observer.OnEvent(ctx, observability.NewEvent(
		EventStepStart, observability.LevelVerbose, "reasoner.Run",
		map[string]any{"step": index, "description": step},
	))

	r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant,
		fmt.Sprintf("Let's do step %d: %s", index, step)))

	response, err := r.agent.Chat(ctx, r.session.Messages(), r.sampling)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}
	r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, response))

	code, ok := extract.Code(response)
	if !ok {
		return nil
	}

	success := false
	for attempt := 1; attempt <= r.maxExecRetries; attempt++ {
		output := r.runner.Execute(ctx, code).Content
		failed := isErrorOutput(output)

		result.Executions = append(result.Executions, ExecutionRecord{
			Step:    index,
			Attempt: attempt,
			Output:  output,
			IsError: failed,
		})

		r.observer.OnEvent(ctx, observability.NewEvent(
			EventExecComplete, observability.LevelVerbose, "reasoner.Run",
			map[string]any{"step": index, "attempt": attempt, "error": failed},
		))

		if !failed {
			r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, output))
			success = true
			break
		}

		r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant,
			fmt.Sprintf("An error occurred while executing step %d: %s", index, output)))
		r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant,
			fmt.Sprintf("Retrying step %d to ensure no further errors (Attempt %d of %d)",
				index, attempt, r.maxExecRetries)))

		r.observer.OnEvent(ctx, observability.NewEvent(
			EventExecRetry, observability.LevelVerbose, "reasoner.Run",
			map[string]any{"step": index, "attempt": attempt},
		))
	}

	if !success {
		r.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant,
			fmt.Sprintf("Step %d encountered errors after %d retries. Moving on to the next step.",
				index, r.maxExecRetries)))

		r.observer.OnEvent(ctx, observability.NewEvent(
			EventStepAbandoned, observability.LevelWarning, "reasoner.Run",
			map[string]any{"step": index, "attempts": r.maxExecRetries},
		))
	}

	return nil
}

// isErrorOutput is the driver's failure test for runner output: any
// occurrence of "error", case-insensitive. The runner's failure
// strings always contain it; successful output that mentions the word
// trips the check too and triggers a retry.
func isErrorOutput(output string) bool {
	return strings.Contains(strings.ToLower(output), "error")
}

func resolveObservers(names []string) (observability.Observer, error) {
	observers := make([]observability.Observer, 0, len(names))
	for _, name := range names {
		o, err := observability.GetObserver(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer %q: %w", name, err)
		}
		observers = append(observers, o)
	}

	switch len(observers) {
	case 0:
		return observability.NewSlogObserver(slog.Default()), nil
	case 1:
		return observers[0], nil
	default:
		return observability.NewMultiObserver(observers...), nil
	}
}
