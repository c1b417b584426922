package bar

// Click handles an action-button click on the visible message. It reports
// the message token to the click listener and advances to the next queued
// message without waiting for the hide delay. Without a listener or a
// visible message the click is ignored.
func (b *Bar[T]) Click() {
	if b.onClick == nil || !b.hasCurrent {
		return
	}

	prev := b.current
	token, _ := prev.Token()

	// Drop the message before notifying so the listener never sees it as current.
	b.current = Message[T]{}
	b.hasCurrent = false
	b.abortHide()
	b.fadeOutComplete(prev, HideClicked)

	b.logger.Debug("message action clicked", "message_id", prev.ID())

	b.onClick(token)
}
