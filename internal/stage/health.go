package stage

// Health summarizes whether a pipeline stage can run with the current config.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy constructs a Health record explaining what is missing.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}

// Label renders the readiness as a short word for tables.
func (h Health) Label() string {
	if h.Ready {
		return "ready"
	}
	return "not ready"
}
