package middleware

import tele "gopkg.in/telebot.v4"

const (
	keyMessages = "messages"
	keyAnswers  = "answers"
	keyKeyboard = "kb"
)

// metricsContext counts replies sent through it so the handler summary can
// report them.
type metricsContext struct{ tele.Context }

func (m metricsContext) bump(key string, withKB bool) {
	n, _ := m.Get(key).(int)
	m.Set(key, n+1)
	if withKB {
		m.Set(keyKeyboard, true)
	}
}

func carriesKeyboard(what any, opts []any) bool {
	if rm, ok := what.(*tele.ReplyMarkup); ok && rm != nil {
		return true
	}
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (m metricsContext) Send(what any, opts ...any) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.bump(keyMessages, carriesKeyboard(what, opts))
	}
	return err
}

func (m metricsContext) Reply(what any, opts ...any) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.bump(keyMessages, carriesKeyboard(what, opts))
	}
	return err
}

func (m metricsContext) Edit(what any, opts ...any) error {
	err := m.Context.Edit(what, opts...)
	if err == nil {
		m.bump(keyMessages, carriesKeyboard(what, opts))
	}
	return err
}

func (m metricsContext) Answer(resp *tele.QueryResponse) error {
	err := m.Context.Answer(resp)
	if err == nil {
		m.bump(keyAnswers, resp != nil && resp.Button != nil)
	}
	return err
}

// MessageMetricsMiddleware resets the per-update counters and wraps c.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(keyMessages, 0)
		c.Set(keyAnswers, 0)
		c.Set(keyKeyboard, false)
		return next(metricsContext{Context: c})
	}
}

// Counters is what a handler sent while serving one update.
type Counters struct {
	Messages int
	Answers  int
	Keyboard bool
}

// GetCounters reads the counters stored on c by MessageMetricsMiddleware.
func GetCounters(c tele.Context) Counters {
	var out Counters
	out.Messages, _ = c.Get(keyMessages).(int)
	out.Answers, _ = c.Get(keyAnswers).(int)
	out.Keyboard, _ = c.Get(keyKeyboard).(bool)
	return out
}
