package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyWakesSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicProducts)
	defer cancel()

	hub.Notify(TopicProducts)

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending wake-up signal")
	}
}

func TestNotifyCoalescesSignals(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicInvoices)
	defer cancel()

	// Repeated notifications collapse into a single pending signal
	hub.Notify(TopicInvoices)
	hub.Notify(TopicInvoices)
	hub.Notify(TopicInvoices)

	<-ch
	select {
	case <-ch:
		t.Fatal("expected signals to coalesce into one")
	default:
	}
}

func TestNotifyIsScopedToTopic(t *testing.T) {
	hub := NewHub()

	products, cancelProducts := hub.Subscribe(TopicProducts)
	defer cancelProducts()
	sales, cancelSales := hub.Subscribe(TopicSales)
	defer cancelSales()

	hub.Notify(TopicSales)

	select {
	case <-products:
		t.Fatal("products subscriber woken by sales notification")
	default:
	}
	select {
	case <-sales:
	default:
		t.Fatal("sales subscriber missed its notification")
	}
}

func TestNotifyMultipleTopics(t *testing.T) {
	hub := NewHub()

	invoices, cancelInvoices := hub.Subscribe(TopicInvoices)
	defer cancelInvoices()
	sales, cancelSales := hub.Subscribe(TopicSales)
	defer cancelSales()

	hub.Notify(TopicInvoices, TopicSales)

	require.Len(t, invoices, 1)
	require.Len(t, sales, 1)
}

func TestCancelStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicExpenses)
	cancel()

	hub.Notify(TopicExpenses)
	assert.Empty(t, ch)
}
