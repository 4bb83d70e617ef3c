package billing

// TodoItem is the only part of a project todo the header needs.
type TodoItem struct {
	Completed bool
}

// HeaderInput is everything the project header is computed from.
type HeaderInput struct {
	BasePrice float64
	Services  []ServiceLine
	Payments  []PaymentEntry
	Todos     []TodoItem
	Currency  string
}

type HeaderPayments struct {
	Total     float64 `json:"total"`
	TotalPaid float64 `json:"total_paid"`
	Remaining float64 `json:"remaining"`
	Currency  string  `json:"currency"`
}

type HeaderTodos struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

type HeaderServices struct {
	Total      int      `json:"total"`
	TotalValue float64  `json:"total_value"`
	Names      []string `json:"names"`
}

// HeaderSummary holds the figures shown on a project's header card.
type HeaderSummary struct {
	Payments HeaderPayments `json:"payments"`
	Todos    HeaderTodos    `json:"todos"`
	Services HeaderServices `json:"services"`
}

// ComputeHeaderSummary joins the project's base price, services, payments and
// todos into header figures. Payments use the narrow paid view of
// HeaderPaidTotal.
func ComputeHeaderSummary(in HeaderInput) HeaderSummary {
	extras := extrasTotal(in.Services)
	total := addCents(ToCents(in.BasePrice), extras)
	paid := headerPaid(in.Payments)

	names := make([]string, 0, len(in.Services))
	for _, s := range in.Services {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}

	completed := 0
	for _, t := range in.Todos {
		if t.Completed {
			completed++
		}
	}

	return HeaderSummary{
		Payments: HeaderPayments{
			Total:     total.Float64(),
			TotalPaid: paid.Float64(),
			Remaining: maxCents(total-paid, 0).Float64(),
			Currency:  in.Currency,
		},
		Todos: HeaderTodos{Total: len(in.Todos), Completed: completed},
		Services: HeaderServices{
			Total:      len(in.Services),
			TotalValue: extras.Float64(),
			Names:      names,
		},
	}
}

// ZeroHeaderSummary is the all-zero summary shown when the header cannot be
// computed.
func ZeroHeaderSummary(currency string) HeaderSummary {
	return HeaderSummary{
		Payments: HeaderPayments{Currency: currency},
		Services: HeaderServices{Names: []string{}},
	}
}
