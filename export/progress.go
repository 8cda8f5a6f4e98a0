package export

// ProgressFunc receives bulk-mode progress notifications: the 5% threshold
// just crossed and the accepted/total counts at that point.
type ProgressFunc func(thresholdPct, accepted, total int)

// progress tracks 5%-threshold crossings over the accepted count. It only
// observes records accepted without a prompt; prompt-mode acceptance is its
// own feedback.
type progress struct {
	total  int
	notify ProgressFunc
}

// observe is called with the accepted count after a bulk-mode acceptance
// and emits one notification when a new 5% multiple has been crossed.
func (p *progress) observe(accepted int) {
	if p.total <= 0 || p.notify == nil {
		return
	}
	cur := accepted * 100 / p.total
	prev := (accepted - 1) * 100 / p.total
	if cur/5 > prev/5 {
		p.notify(cur/5*5, accepted, p.total)
	}
}
