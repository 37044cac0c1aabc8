package alerts

// FilterAll shows every non-dismissed alert; a priority selector matches on
// priority, and any other selector matches on the alert type.
const FilterAll = "all"

// Visible derives the alerts the user should see for a filter selector.
// Dismissed ids are always excluded and source order is preserved.
func (s *Service) Visible(filter string) []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if _, hidden := s.dismissed[a.ID]; hidden {
			continue
		}
		if matches(a, filter) {
			visible = append(visible, a)
		}
	}
	return visible
}

func matches(a Alert, filter string) bool {
	switch filter {
	case FilterAll, "":
		return true
	case string(PriorityHigh), string(PriorityMedium), string(PriorityLow):
		return string(a.Priority) == filter
	default:
		return a.Type == filter
	}
}
