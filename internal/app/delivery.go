package app

import tea "github.com/charmbracelet/bubbletea"

const deliveryBuffer = 64

// Delivery hands download completions from fetch goroutines to the UI
// loop. Pass Deliver as download.Options.Deliver.
type Delivery chan func()

// NewDelivery creates a buffered delivery channel.
func NewDelivery() Delivery {
	return make(Delivery, deliveryBuffer)
}

// Deliver queues fn to run inside Update. It blocks while the buffer is
// full.
func (d Delivery) Deliver(fn func()) {
	d <- fn
}

func (d Delivery) wait() tea.Cmd {
	if d == nil {
		return nil
	}
	return func() tea.Msg {
		return deliveryMsg(<-d)
	}
}
