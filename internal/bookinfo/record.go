package bookinfo

import "strings"

// Record is one element of the OpenBD /get response.
type Record struct {
	Summary *Summary `json:"summary,omitempty"`
	Onix    *Onix    `json:"onix,omitempty"`
}

// Summary is OpenBD's flattened view of a record.
type Summary struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	PubDate   string `json:"pubdate"`
	Cover     string `json:"cover"`
	Price     string `json:"price,omitempty"`
}

// Onix is the subset of the ONIX structure the lookup falls back to.
type Onix struct {
	DescriptiveDetail struct {
		TitleDetail struct {
			TitleElement []struct {
				TitleText struct {
					Content string `json:"content"`
				} `json:"TitleText"`
			} `json:"TitleElement"`
		} `json:"TitleDetail"`
		Contributor []struct {
			PersonName struct {
				Content string `json:"content"`
			} `json:"PersonName"`
		} `json:"Contributor"`
	} `json:"DescriptiveDetail"`
	PublishingDetail struct {
		Imprint struct {
			ImprintName string `json:"ImprintName"`
		} `json:"Imprint"`
	} `json:"PublishingDetail"`
	ProductSupply struct {
		SupplyDetail struct {
			Price []OnixPrice `json:"Price"`
		} `json:"SupplyDetail"`
	} `json:"ProductSupply"`
}

// OnixPrice is one supply price entry.
type OnixPrice struct {
	PriceType    string `json:"PriceType"`
	CurrencyCode string `json:"CurrencyCode"`
	PriceAmount  string `json:"PriceAmount"`
}

// Info is the normalized view of a record.
type Info struct {
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	PublishedDate string
	CoverURL      string
	Price         *float64
}

// parseRecord reads the summary first and falls back to the ONIX structure
// for every field the summary leaves blank.
func parseRecord(rec Record) Info {
	var info Info
	if s := rec.Summary; s != nil {
		info = Info{
			ISBN:          strings.TrimSpace(s.ISBN),
			Title:         strings.TrimSpace(s.Title),
			Author:        strings.TrimSpace(s.Author),
			Publisher:     strings.TrimSpace(s.Publisher),
			PublishedDate: strings.TrimSpace(s.PubDate),
			CoverURL:      strings.TrimSpace(s.Cover),
			Price:         parsePrice(s.Price),
		}
	}
	if rec.Onix == nil {
		return info
	}
	fallback := extractFromOnix(rec.Onix)
	if info.Title == "" {
		info.Title = fallback.Title
	}
	if info.Author == "" {
		info.Author = fallback.Author
	}
	if info.Publisher == "" {
		info.Publisher = fallback.Publisher
	}
	if info.Price == nil {
		info.Price = fallback.Price
	}
	return info
}

func extractFromOnix(o *Onix) Info {
	var info Info
	if titles := o.DescriptiveDetail.TitleDetail.TitleElement; len(titles) > 0 {
		info.Title = strings.TrimSpace(titles[0].TitleText.Content)
	}
	if people := o.DescriptiveDetail.Contributor; len(people) > 0 {
		info.Author = strings.TrimSpace(people[0].PersonName.Content)
	}
	info.Publisher = strings.TrimSpace(o.PublishingDetail.Imprint.ImprintName)
	info.Price = onixPrice(o.ProductSupply.SupplyDetail.Price)
	return info
}

// onixPrice prefers the recommended retail price (PriceType 01).
func onixPrice(prices []OnixPrice) *float64 {
	if len(prices) == 0 {
		return nil
	}
	chosen := prices[0]
	for _, p := range prices {
		if p.PriceType == "01" {
			chosen = p
			break
		}
	}
	return parsePrice(chosen.PriceAmount)
}

// parsePrice reads the leading run of digits in s, ignoring surrounding
// whitespace and an optional sign. Strings with no leading digits yield nil.
func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil
	}
	var v float64
	for i := 0; i < end; i++ {
		v = v*10 + float64(s[i]-'0')
	}
	if neg {
		v = -v
	}
	return &v
}
