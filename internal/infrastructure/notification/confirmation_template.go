package notification

import (
	"html/template"
	"strings"

	"github.com/anascb/storefront/internal/domain/order"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var confirmationTemplate = template.Must(template.New("confirmation").
	Funcs(template.FuncMap{
		"dhs": func(d decimal.Decimal) string {
			return valueobject.NewMoneyMAD(d).Display()
		},
	}).
	Parse(`<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; color: #1a1a1a; max-width: 600px; margin: 0 auto;">
  <h1 style="font-size: 20px;">Merci pour votre commande, {{.Order.CustomerName}} !</h1>
  <p>Votre commande <strong>{{.Order.OrderNumber}}</strong> a bien été enregistrée.
  Nous vous contacterons par téléphone pour confirmer la livraison.</p>

  <table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
    <thead>
      <tr style="border-bottom: 1px solid #ddd; text-align: left;">
        <th style="padding: 8px 4px;">Article</th>
        <th style="padding: 8px 4px;">Qté</th>
        <th style="padding: 8px 4px; text-align: right;">Sous-total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Order.Items}}
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 8px 4px;">{{.ProductName}} — Taille {{.Size}}, {{.Color}}</td>
        <td style="padding: 8px 4px;">{{.Quantity}}</td>
        <td style="padding: 8px 4px; text-align: right;">{{dhs .Subtotal}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table style="width: 100%; margin: 16px 0;">
    <tr><td>Sous-total</td><td style="text-align: right;">{{dhs .Order.Subtotal}}</td></tr>
    {{if .HasDiscount}}<tr><td>Remise ({{.Order.PromoCode}})</td><td style="text-align: right;">-{{dhs .Order.Discount}}</td></tr>{{end}}
    <tr><td>Livraison</td><td style="text-align: right;">{{dhs .Order.ShippingFee}}</td></tr>
    <tr style="font-weight: bold;"><td>Total à payer à la livraison</td><td style="text-align: right;">{{dhs .Order.Total}}</td></tr>
  </table>

  <h2 style="font-size: 16px;">Adresse de livraison</h2>
  <p>{{.Order.Address}}<br>{{.Order.PostalCode}} {{.Order.City}}</p>

  <p style="color: #777; font-size: 12px;">Paiement à la livraison. Pour toute question,
  répondez simplement à cet email.</p>
</body>
</html>`))

type confirmationData struct {
	Order       *order.Order
	HasDiscount bool
}

func renderConfirmation(o *order.Order) (string, error) {
	var buf strings.Builder
	err := confirmationTemplate.Execute(&buf, confirmationData{
		Order:       o,
		HasDiscount: o.Discount.IsPositive(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
