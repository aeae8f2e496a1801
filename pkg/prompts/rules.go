package prompts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Example is one few-shot example embedded in the system prompt. Exactly one
// of SQL or Response is set: SQL for a direct answer, Response for a raw
// reply demonstrating the refusal shape.
type Example struct {
	User     string `yaml:"user"`
	SQL      string `yaml:"sql,omitempty"`
	Response string `yaml:"response,omitempty"`
}

// RulePack is the versioned prompt data layered on top of the dynamic
// schema document: static hints about known tables, the hard rule list, and
// few-shot examples. Keeping it as data means rule drift doesn't touch the
// pipeline logic.
type RulePack struct {
	Version       int       `yaml:"version"`
	BusinessRules []string  `yaml:"business_rules"`
	Rules         []string  `yaml:"rules"`
	Examples      []Example `yaml:"examples"`
}

// LoadRulePack reads a rule pack from a YAML file.
func LoadRulePack(path string) (*RulePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack: %w", err)
	}

	var pack RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse rule pack: %w", err)
	}
	return &pack, nil
}

// DefaultRulePack returns the compiled-in rule pack for the e-commerce
// schema.
func DefaultRulePack() *RulePack {
	return &RulePack{
		Version: 1,
		BusinessRules: []string{
			`Table "products" has columns: id, name, description, brand, color, weight, dimensions, rating, merchant_id, price, created_at, category_id`,
			`Table "orders" has columns: id, user_id, status, created_at, total_sum, shipping_address, billing_address, payment_method, payment_status, shipping_carrier_id`,
			`Table "users" has columns: id, full_name, email, username, phone_number, last_login_at, avatar_url, created_at, country_code`,
			`Table "categories" has columns: id, name, parent_category_id`,
			`Table "countries" has columns: id, name`,
			`Table "merchants" has columns: id, country_code, status, merchant_name, address, website_url, phone_number, email, logo_url, created_at`,
			`Table "order_items" has columns: id, order_id, product_id, quantity, price, sum`,
			`Table "shipping_carriers" has columns: id, name, tracking_url`,
		},
		Rules: []string{
			"Use only the tables and columns mentioned above",
			"For PostgreSQL syntax use CURRENT_DATE for date operations",
			"Use proper JOIN syntax with table aliases",
			"If the request is impossible with this schema, explain why",
		},
		Examples: []Example{
			{
				User: "Show expensive Nike products",
				SQL:  "SELECT * FROM products WHERE brand = 'Nike' AND price > 500;",
			},
			{
				User: "Find USA customers' orders",
				SQL:  "SELECT o.* FROM orders o JOIN users u ON o.user_id = u.id JOIN countries c ON u.country_code = c.id WHERE c.name = 'USA';",
			},
			{
				User: "Count products per category",
				SQL:  "SELECT c.name, COUNT(p.id) FROM categories c LEFT JOIN products p ON c.id = p.category_id GROUP BY c.id, c.name;",
			},
			{
				User:     "How old is Dumbledore?",
				Response: `{"sql": "", "error_description": "Cannot answer - the database contains e-commerce data but no information about Harry Potter characters."}`,
			},
		},
	}
}
