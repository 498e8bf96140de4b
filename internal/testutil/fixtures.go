package testutil

// Sale is a sale to seed, in entry order.
type Sale struct {
	Series   string
	Country  string
	Customer string
}

// Fixture is a set of products and sales to seed a store with.
type Fixture struct {
	Products []string
	Sales    []Sale
}

// Empty has no products and no sales.
var Empty = Fixture{}

// Catalog has products and no sales.
var Catalog = Fixture{
	Products: []string{"HB851", "HB852", "HB853", "HB900"},
}

// Markets is a small multi-market history. Entered oldest first, so the
// store lists the Japan sale of HB900 first.
var Markets = Fixture{
	Products: Catalog.Products,
	Sales: []Sale{
		{Series: "HB853", Country: "United States", Customer: "llc tech"},
		{Series: "HB851", Country: "Japan", Customer: "Zeta"},
		{Series: "HB852", Country: "Brazil", Customer: "Client A"},
		{Series: "HB851", Country: "Japan", Customer: "Acme"},
		{Series: "HB851", Country: "Germany", Customer: "LLC Tech"},
		{Series: "HB900", Country: "Japan", Customer: "Acme"},
	},
}

// Builder assembles a Fixture fluently.
type Builder struct {
	fixture Fixture
}

// NewBuilder starts from a copy of base.
func NewBuilder(base Fixture) *Builder {
	return &Builder{fixture: Fixture{
		Products: append([]string{}, base.Products...),
		Sales:    append([]Sale{}, base.Sales...),
	}}
}

// WithProducts adds product names.
func (b *Builder) WithProducts(names ...string) *Builder {
	b.fixture.Products = append(b.fixture.Products, names...)
	return b
}

// WithSale adds one sale.
func (b *Builder) WithSale(series, country, customer string) *Builder {
	b.fixture.Sales = append(b.fixture.Sales, Sale{Series: series, Country: country, Customer: customer})
	return b
}

// Build returns the assembled fixture.
func (b *Builder) Build() Fixture {
	return b.fixture
}
