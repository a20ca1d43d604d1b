package goliwc

import "github.com/germtb/goliwc/dom"

// ContextRequestEvent is the event type used to ask the nearest enclosing
// provider for its context.
const ContextRequestEvent = "goliwc:context"

// contextRequest is the payload slot of a context request. The first
// answering listener fills it in.
type contextRequest struct {
	ctx      Context
	answered bool
}

// RequestContext asks the nearest enclosing provider of n for its context.
// Dispatch is synchronous, so the answer is available as soon as it returns.
// The boolean is false when nobody answered.
func RequestContext(n *dom.Node) (Context, bool) {
	req := &contextRequest{}
	n.DispatchEvent(dom.NewEvent(ContextRequestEvent, dom.EventInit{
		Bubbles:    true,
		Cancelable: true,
		Detail:     req,
	}))
	if !req.answered {
		return DefaultContext, false
	}
	return req.ctx, true
}

// AnswerContext makes n answer context requests from itself and its
// descendants with ctx. The returned function stops answering.
func AnswerContext(n *dom.Node, ctx Context) (remove func()) {
	return n.AddEventListener(ContextRequestEvent, func(e *dom.Event) {
		req, ok := e.Detail.(*contextRequest)
		if !ok {
			return
		}
		e.StopPropagation()
		req.ctx = ctx
		req.answered = true
	})
}
