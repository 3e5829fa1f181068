package order

import "meridian-be/internal/notify"

func toNotice(o *Order) notify.OrderNotice {
	notice := notify.OrderNotice{
		OrderNumber:      o.OrderNumber,
		PaymentReference: o.PaymentReference,
		Total:            o.Total,
		PlacedAt:         o.CreatedAt,
	}

	if o.CustomerEmail != nil {
		notice.CustomerEmail = *o.CustomerEmail
	}
	if o.CustomerName != nil {
		notice.CustomerName = *o.CustomerName
	}

	for _, it := range o.Items {
		name := it.ProductName
		if name == "" {
			name = it.ProductID
		}
		notice.Items = append(notice.Items, notify.LineItem{
			Name:     name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	return notice
}
