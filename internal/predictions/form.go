package predictions

import "sync"

// Form aggregates the assessment inputs: one group of health metrics and one
// of lifestyle answers. Setters replace exactly one field and leave the rest
// alone, and the form keeps its values after a submission so the user can
// adjust and resubmit.
type Form struct {
	mu        sync.Mutex
	metrics   map[string]string
	lifestyle map[string]string
}

func NewForm() *Form {
	return &Form{
		metrics:   make(map[string]string),
		lifestyle: make(map[string]string),
	}
}

func (f *Form) SetMetric(field, value string) {
	f.mu.Lock()
	f.metrics[field] = value
	f.mu.Unlock()
}

func (f *Form) SetLifestyle(field, value string) {
	f.mu.Lock()
	f.lifestyle[field] = value
	f.mu.Unlock()
}

func (f *Form) Metric(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.metrics[field]
}

func (f *Form) Lifestyle(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lifestyle[field]
}

func (f *Form) Reset() {
	f.mu.Lock()
	f.metrics = make(map[string]string)
	f.lifestyle = make(map[string]string)
	f.mu.Unlock()
}

// body serializes the full field set for one request.
func (f *Form) body() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	metrics := make(map[string]string, len(f.metrics))
	for k, v := range f.metrics {
		metrics[k] = v
	}
	lifestyle := make(map[string]string, len(f.lifestyle))
	for k, v := range f.lifestyle {
		lifestyle[k] = v
	}

	return map[string]interface{}{
		"healthData": metrics,
		"lifestyle":  lifestyle,
	}
}
