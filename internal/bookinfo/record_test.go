package bookinfo

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"1200", ptr(1200)},
		{" 2640 ", ptr(2640)},
		{"1200円", ptr(1200)},
		{"+80", ptr(80)},
		{"", nil},
		{"abc", nil},
		{"円1200", nil},
	}
	for _, tc := range cases {
		got := parsePrice(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("parsePrice(%q) = %v, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("parsePrice(%q) = %v, want %v", tc.in, got, *tc.want)
		}
	}
}

func TestParseRecordPrefersSummary(t *testing.T) {
	rec := Record{
		Summary: &Summary{Title: "Summary Title", Author: "Summary Author", Price: "1500"},
		Onix:    onixWith("Onix Title", "Onix Author", "Onix Imprint", []OnixPrice{{PriceType: "01", PriceAmount: "9999"}}),
	}
	info := parseRecord(rec)
	if info.Title != "Summary Title" || info.Author != "Summary Author" {
		t.Fatalf("expected summary fields, got %+v", info)
	}
	if info.Publisher != "Onix Imprint" {
		t.Fatalf("expected onix publisher fallback, got %q", info.Publisher)
	}
	if info.Price == nil || *info.Price != 1500 {
		t.Fatalf("expected summary price, got %v", info.Price)
	}
}

func TestParseRecordFallsBackToOnix(t *testing.T) {
	rec := Record{
		Onix: onixWith("Onix Title", "Onix Author", "Onix Imprint", []OnixPrice{
			{PriceType: "03", PriceAmount: "100"},
			{PriceType: "01", PriceAmount: "2200"},
		}),
	}
	info := parseRecord(rec)
	if info.Title != "Onix Title" || info.Author != "Onix Author" || info.Publisher != "Onix Imprint" {
		t.Fatalf("unexpected onix extraction %+v", info)
	}
	if info.Price == nil || *info.Price != 2200 {
		t.Fatalf("expected RRP price, got %v", info.Price)
	}
}

func TestParseRecordUnparsablePriceIsUndefined(t *testing.T) {
	rec := Record{Summary: &Summary{Title: "T", Price: "n/a"}}
	if info := parseRecord(rec); info.Price != nil {
		t.Fatalf("expected nil price, got %v", *info.Price)
	}
	rec = Record{Onix: onixWith("T", "", "", []OnixPrice{{PriceType: "02", PriceAmount: "free"}})}
	if info := parseRecord(rec); info.Price != nil {
		t.Fatalf("expected nil price, got %v", *info.Price)
	}
}

func TestParseRecordEmpty(t *testing.T) {
	info := parseRecord(Record{Onix: &Onix{}})
	if info.Title != "" || info.Author != "" || info.Price != nil {
		t.Fatalf("expected zero info, got %+v", info)
	}
}

func onixWith(title, author, imprint string, prices []OnixPrice) *Onix {
	o := &Onix{}
	if title != "" {
		o.DescriptiveDetail.TitleDetail.TitleElement = append(o.DescriptiveDetail.TitleDetail.TitleElement, struct {
			TitleText struct {
				Content string `json:"content"`
			} `json:"TitleText"`
		}{})
		o.DescriptiveDetail.TitleDetail.TitleElement[0].TitleText.Content = title
	}
	if author != "" {
		o.DescriptiveDetail.Contributor = append(o.DescriptiveDetail.Contributor, struct {
			PersonName struct {
				Content string `json:"content"`
			} `json:"PersonName"`
		}{})
		o.DescriptiveDetail.Contributor[0].PersonName.Content = author
	}
	o.PublishingDetail.Imprint.ImprintName = imprint
	o.ProductSupply.SupplyDetail.Price = prices
	return o
}

func ptr(v float64) *float64 { return &v }
