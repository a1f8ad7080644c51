package observers

import "delivery-route-optimizer/internal/ports"

// Multi fans each event out to every non-nil observer in order.
func Multi(obs ...ports.RouteObserver) ports.RouteObserver {
	list := make([]ports.RouteObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}

	switch len(list) {
	case 0:
		return ports.NopObserver{}
	case 1:
		return list[0]
	}

	return ports.RouteObserverFunc(func(e ports.RouteEvent) {
		for _, o := range list {
			o.Observe(e)
		}
	})
}
