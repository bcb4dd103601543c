package services

import (
	"fmt"
	"regexp"
	"strings"

	"laundry/internal/core/domain/model/order"
)

// placeholderPattern matches {{placeholder_name}} tokens in template bodies.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// FallbackStatusChangeBody is used when no active status_change template is
// configured. It covers the recognized placeholders so customers always get
// a meaningful message.
const FallbackStatusChangeBody = "Hi {{customer_name}}, your order {{order_id}} " +
	"has moved from {{old_status}} to {{new_status}}. Total: {{total_amount}}."

// TemplateRenderer fills message-template placeholders from a work order
// snapshot.
//
// Recognized placeholders: customer_name, order_id, old_status, new_status,
// order_items, total_amount, balance_amount. Unrecognized placeholders are
// replaced with an empty string rather than left literal, so template syntax
// never leaks to customers.
type TemplateRenderer struct{}

// NewTemplateRenderer creates a renderer. Stateless and safe for concurrent
// use.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// Render substitutes all placeholders in body with values from the order
// snapshot and the given status transition.
func (r *TemplateRenderer) Render(body string, o *order.Order, oldStatus, newStatus order.Status) string {
	vars := map[string]string{
		"customer_name":  o.CustomerName(),
		"order_id":       o.ID().String(),
		"old_status":     oldStatus.String(),
		"new_status":     newStatus.String(),
		"order_items":    summarizeItems(o.Items()),
		"total_amount":   o.TotalAmount().StringFixed(2),
		"balance_amount": o.BalanceAmount().StringFixed(2),
	}

	return placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return vars[name]
	})
}

// summarizeItems renders an itemized order summary like
// "4 x wash @ 50.00, 2 x dry_clean @ 120.50".
func summarizeItems(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d x %s @ %s",
			item.Quantity(), item.ServiceType(), item.UnitPrice().StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}
