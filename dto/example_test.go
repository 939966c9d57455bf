package dto_test

import (
	"fmt"
	"strings"

	"dtomap/dto"
)

type Customer struct {
	Name   string  `dto:"name"`
	Email  string  `dto:"email"`
	Orders []Order `dto:"orders"`
}

func (c *Customer) SetEmail(v string) { c.Email = strings.ToLower(v) }

type Order struct {
	ID    string  `dto:"id"`
	Total float64 `dto:"total"`
}

func Example() {
	dto.MustRegister[Order](dto.Default)
	dto.MustRegister[Customer](dto.Default)

	c, err := dto.FromData[Customer](dto.Data{
		"name":   "Ada",
		"email":  "ADA@EXAMPLE.COM",
		"orders": []any{dto.Data{"id": "o-1", "total": 9.5}},
		"extra":  true,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(c.Email, c.Orders[0].ID)

	text, err := dto.ToText(c)
	if err != nil {
		panic(err)
	}

	fmt.Println(text)
	// Output:
	// ada@example.com o-1
	// {"name":"Ada","email":"ada@example.com","orders":[{"id":"o-1","total":9.5}]}
}

func ExampleMapper_ToYAML() {
	r := dto.NewRegistry()
	dto.MustRegister[Order](r)

	m := dto.New(dto.WithRegistry(r))

	text, err := m.ToYAML(&Order{ID: "o-2", Total: 3})
	if err != nil {
		panic(err)
	}

	fmt.Print(text)
	// Output:
	// id: o-2
	// total: 3
}

func ExampleDecodeText() {
	r := dto.NewRegistry()
	dto.MustRegister[Order](r)

	o, err := dto.DecodeText[Order](dto.New(dto.WithRegistry(r)), `{"total": 12, "id": "o-3"}`)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s %.1f\n", o.ID, o.Total)
	// Output: o-3 12.0
}
