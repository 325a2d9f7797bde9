package flow

import "github.com/infsectest/ist-detector/internal/catalog"

const contractURL = "https://infsectest.ru/docs/offer.pdf"

func chunkRows(labels []string, rowSize int) [][]Button {
	var rows [][]Button
	for len(labels) > 0 {
		n := rowSize
		if len(labels) < n {
			n = len(labels)
		}
		row := make([]Button, 0, n)
		for _, label := range labels[:n] {
			row = append(row, Button{Label: label})
		}
		rows = append(rows, row)
		labels = labels[n:]
	}
	return rows
}

func socialNetworkKeyboard() *Keyboard {
	labels := make([]string, 0, len(catalog.SocialNetworks))
	for _, n := range catalog.SocialNetworks {
		labels = append(labels, n.Label)
	}
	return &Keyboard{Rows: chunkRows(labels, 2)}
}

func serviceKeyboard() *Keyboard {
	labels := make([]string, 0, len(catalog.ServiceOptions))
	for _, s := range catalog.ServiceOptions {
		labels = append(labels, s.Label)
	}
	return &Keyboard{Rows: chunkRows(labels, 2)}
}

func planKeyboard(plans []catalog.SubscriptionPlan) *Keyboard {
	rows := make([][]Button, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []Button{{Label: p.Label, Callback: "plan:" + p.Code}})
	}
	return &Keyboard{Inline: true, Rows: rows}
}

func skipKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{{{Label: "Пропустить"}}}}
}

func confirmationKeyboard() *Keyboard {
	return &Keyboard{Inline: true, Rows: [][]Button{{
		{Label: "Подтвердить", Callback: "confirm_request"},
		{Label: "Отменить", Callback: "cancel_request"},
	}}}
}

func paymentKeyboard(url string) *Keyboard {
	return &Keyboard{Inline: true, Rows: [][]Button{{
		{Label: "Оплатить через Робокассу", URL: url},
	}}}
}

func contractKeyboard() *Keyboard {
	return &Keyboard{Inline: true, Rows: [][]Button{{
		{Label: "Договор, реквизиты", URL: contractURL},
	}}}
}

func removeKeyboard() *Keyboard {
	return &Keyboard{Remove: true}
}
