package voice

import (
	"context"
	"sync"
)

// Controller runs one capture at a time on an Engine. Final fragments go to
// the sink, the latest interim text is kept for display.
type Controller struct {
	engine Engine
	sink   func(text string)

	mu      sync.Mutex
	active  bool
	interim string
	cancel  context.CancelFunc
}

// NewController creates a Controller. sink receives each finalized utterance.
func NewController(engine Engine, sink func(text string)) *Controller {
	return &Controller{
		engine: engine,
		sink:   sink,
	}
}

// Start begins capture. Capture outlives ctx's cancellation but keeps its
// values. Starting an active controller is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return nil
	}

	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if err := c.engine.Listen(listenCtx, c.handle); err != nil {
		cancel()
		return err
	}
	c.active = true
	c.interim = ""
	c.cancel = cancel
	return nil
}

// Stop ends capture. It is safe to call any number of times.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	c.interim = ""
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	cancel()
	c.engine.Close()
}

// Active reports whether capture is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Interim returns the latest non-final text.
func (c *Controller) Interim() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interim
}

func (c *Controller) handle(f Fragment) {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	if !f.Final {
		c.interim = f.Text
		c.mu.Unlock()
		return
	}
	c.interim = ""
	c.mu.Unlock()

	// The sink may take other locks; never call it while holding c.mu.
	if f.Text != "" {
		c.sink(f.Text)
	}
}
