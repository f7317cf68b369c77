package invoice

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// ToXML serializes the invoice into the FA vocabulary under the given
// namespace (NamespaceFA2 or NamespaceFA3). Serialization is pure: the same
// document always yields the same bytes.
func (inv *Invoice) ToXML(namespace string) ([]byte, error) {
	var buf bytes.Buffer
	if err := inv.WriteXML(&buf, namespace); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXML streams the serialized invoice to w.
func (inv *Invoice) WriteXML(w io.Writer, namespace string) error {
	if inv == nil {
		return fmt.Errorf("invoice: cannot serialize nil invoice")
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("invoice: write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(inv.toWire(namespace)); err != nil {
		return fmt.Errorf("invoice: encode: %w", err)
	}
	return enc.Close()
}

type xmlInvoice struct {
	XMLName  xml.Name        `xml:"Faktura"`
	Xmlns    string          `xml:"xmlns,attr"`
	Naglowek xmlHeader       `xml:"Naglowek"`
	Podmiot1 *xmlParty       `xml:"Podmiot1,omitempty"`
	Podmiot2 *xmlParty       `xml:"Podmiot2,omitempty"`
	Podmiot3 []xmlThirdParty `xml:"Podmiot3,omitempty"`
	Fa       *xmlFa          `xml:"Fa,omitempty"`
}

type xmlHeader struct {
	KodFormularza     string `xml:"KodFormularza"`
	WariantFormularza int    `xml:"WariantFormularza"`
	SystemInfo        string `xml:"SystemInfo,omitempty"`
}

type xmlPartyID struct {
	NIP        string `xml:"NIP,omitempty"`
	KodKrajuUE string `xml:"KodKrajuUE,omitempty"`
	NrVatUE    string `xml:"NrVatUE,omitempty"`
	KodKraju   string `xml:"KodKraju,omitempty"`
	NrID       string `xml:"NrID,omitempty"`
	BrakID     string `xml:"BrakID,omitempty"`
	Nazwa      string `xml:"Nazwa,omitempty"`
}

type xmlParty struct {
	Dane  xmlPartyID `xml:"DaneIdentyfikacyjne"`
	Adres string     `xml:"Adres,omitempty"`
}

type xmlThirdParty struct {
	Dane    xmlPartyID `xml:"DaneIdentyfikacyjne"`
	Adres   string     `xml:"Adres,omitempty"`
	Rola    string     `xml:"Rola"`
	Udzial  string     `xml:"Udzial,omitempty"`
}

type xmlFa struct {
	KodWaluty  string       `xml:"KodWaluty,omitempty"`
	P1         string       `xml:"P_1,omitempty"`
	P2         string       `xml:"P_2,omitempty"`
	P6         string       `xml:"P_6,omitempty"`
	OkresFa    *xmlPeriod   `xml:"OkresFa,omitempty"`
	P131       string       `xml:"P_13_1,omitempty"`
	P141       string       `xml:"P_14_1,omitempty"`
	P132       string       `xml:"P_13_2,omitempty"`
	P142       string       `xml:"P_14_2,omitempty"`
	P133       string       `xml:"P_13_3,omitempty"`
	P143       string       `xml:"P_14_3,omitempty"`
	P134       string       `xml:"P_13_4,omitempty"`
	P144       string       `xml:"P_14_4,omitempty"`
	P135       string       `xml:"P_13_5,omitempty"`
	P136       string       `xml:"P_13_6,omitempty"`
	P137       string       `xml:"P_13_7,omitempty"`
	P138       string       `xml:"P_13_8,omitempty"`
	SumaNetto  string       `xml:"SumaNetto,omitempty"`
	SumaVAT    string       `xml:"SumaVAT,omitempty"`
	P15        string       `xml:"P_15,omitempty"`
	Rodzaj     string       `xml:"RodzajFaktury,omitempty"`
	Przyczyna  string       `xml:"PrzyczynaKorekty,omitempty"`
	Korygowana *xmlKoryg    `xml:"DaneFaKorygowanej,omitempty"`
	Wiersze    []xmlWiersz  `xml:"FaWiersz,omitempty"`
	Platnosc   *xmlPlatnosc `xml:"Platnosc,omitempty"`
}

type xmlPeriod struct {
	Od string `xml:"P_6_Od"`
	Do string `xml:"P_6_Do"`
}

type xmlKoryg struct {
	Data   string `xml:"DataWystFaKorygowanej,omitempty"`
	Numer  string `xml:"NrFaKorygowanej,omitempty"`
	NrKSeF string `xml:"NrKSeF,omitempty"`
}

type xmlWiersz struct {
	Nr     int    `xml:"NrWierszaFa"`
	P7     string `xml:"P_7,omitempty"`
	P8A    string `xml:"P_8A,omitempty"`
	P8B    string `xml:"P_8B,omitempty"`
	P9A    string `xml:"P_9A,omitempty"`
	P10    string `xml:"P_10,omitempty"`
	P11    string `xml:"P_11,omitempty"`
	P11A   string `xml:"P_11A,omitempty"`
	P12    string `xml:"P_12,omitempty"`
	Kwota  string `xml:"KwotaPodatku,omitempty"`
	GTU    string `xml:"GTU,omitempty"`
	PKWiU  string `xml:"PKWiU,omitempty"`
}

type xmlRachunek struct {
	NrRB         string `xml:"NrRB"`
	NazwaBanku   string `xml:"NazwaBanku,omitempty"`
	OpisRachunku string `xml:"OpisRachunku,omitempty"`
}

type xmlPlatnosc struct {
	Termin   string        `xml:"TerminPlatnosci,omitempty"`
	Forma    string        `xml:"FormaPlatnosci,omitempty"`
	Rachunki []xmlRachunek `xml:"RachunekBankowy,omitempty"`
	Faktor   []xmlRachunek `xml:"RachunekBankowyFaktora,omitempty"`
}

const dateLayout = "2006-01-02"

func (inv *Invoice) toWire(namespace string) xmlInvoice {
	variant := 3
	if namespace == NamespaceFA2 {
		variant = 2
	}

	out := xmlInvoice{
		Xmlns: namespace,
		Naglowek: xmlHeader{
			KodFormularza:     "FA",
			WariantFormularza: variant,
			SystemInfo:        inv.Header.SystemInfo,
		},
	}
	if inv.Seller != nil {
		out.Podmiot1 = partyToWire(inv.Seller)
	}
	if inv.Buyer != nil {
		out.Podmiot2 = partyToWire(inv.Buyer)
	}
	for _, tp := range inv.ThirdParties {
		w := xmlThirdParty{
			Dane:  partyToWire(&tp.Party).Dane,
			Adres: tp.Address,
			Rola:  string(tp.Role),
		}
		if tp.SharePercent != nil {
			w.Udzial = tp.SharePercent.String()
		}
		out.Podmiot3 = append(out.Podmiot3, w)
	}
	if inv.Data != nil {
		out.Fa = dataToWire(inv.Data)
	}
	return out
}

func partyToWire(p *Party) *xmlParty {
	w := &xmlParty{
		Dane: xmlPartyID{
			NIP:        p.TaxID,
			KodKrajuUE: p.EUVatCountry,
			NrVatUE:    p.EUVatID,
			KodKraju:   p.OtherIDCountry,
			NrID:       p.OtherID,
			Nazwa:      p.Name,
		},
		Adres: p.Address,
	}
	if p.NoIdentifier {
		w.Dane.BrakID = "1"
	}
	return w
}

func dataToWire(d *InvoiceData) *xmlFa {
	fa := &xmlFa{
		KodWaluty: d.Currency,
		P2:        d.Number,
		Rodzaj:    string(d.Type),
		P131:      amount(d.Summary.Net23),
		P141:      amount(d.Summary.Vat23),
		P132:      amount(d.Summary.Net8),
		P142:      amount(d.Summary.Vat8),
		P133:      amount(d.Summary.Net5),
		P143:      amount(d.Summary.Vat5),
		P134:      amount(d.Summary.Net4),
		P144:      amount(d.Summary.Vat4),
		P135:      amount(d.Summary.Net0Domestic),
		P136:      amount(d.Summary.Net0IntraEU),
		P137:      amount(d.Summary.Net0Export),
		P138:      amount(d.Summary.NetExempt),
		SumaNetto: amount(d.Summary.TotalNet),
		SumaVAT:   amount(d.Summary.TotalVat),
		P15:       amount(d.Summary.Total),
	}
	if !d.IssueDate.IsZero() {
		fa.P1 = d.IssueDate.Format(dateLayout)
	}
	if d.SaleDate != nil {
		fa.P6 = d.SaleDate.Format(dateLayout)
	}
	if d.SalePeriod != nil {
		fa.OkresFa = &xmlPeriod{
			Od: d.SalePeriod.Start.Format(dateLayout),
			Do: d.SalePeriod.End.Format(dateLayout),
		}
	}
	if d.Correction != nil {
		fa.Przyczyna = d.Correction.Reason
		if d.Correction.Corrected != nil {
			fa.Korygowana = &xmlKoryg{
				Numer:  d.Correction.Corrected.Number,
				NrKSeF: d.Correction.Corrected.KSeFNumber,
			}
			if !d.Correction.Corrected.IssueDate.IsZero() {
				fa.Korygowana.Data = d.Correction.Corrected.IssueDate.Format(dateLayout)
			}
		}
	}
	for _, line := range d.Lines {
		fa.Wiersze = append(fa.Wiersze, xmlWiersz{
			Nr:    line.LineNumber,
			P7:    line.Name,
			P8A:   line.Unit,
			P8B:   quantity(line.Quantity),
			P9A:   amount(line.UnitPrice),
			P10:   amount(line.Discount),
			P11:   amount(line.NetAmount),
			P11A:  amount(line.GrossAmount),
			P12:   string(line.Rate),
			Kwota: amount(line.VatAmount),
			GTU:   line.GTU,
			PKWiU: line.PKWiU,
		})
	}
	if d.Payment != nil {
		fa.Platnosc = &xmlPlatnosc{Forma: string(d.Payment.Form)}
		if d.Payment.DueDate != nil {
			fa.Platnosc.Termin = d.Payment.DueDate.Format(dateLayout)
		}
		for _, acc := range d.Payment.Accounts {
			fa.Platnosc.Rachunki = append(fa.Platnosc.Rachunki, accountToWire(acc))
		}
		for _, acc := range d.Payment.FactoringAccounts {
			fa.Platnosc.Faktor = append(fa.Platnosc.Faktor, accountToWire(acc))
		}
	}
	return fa
}

func accountToWire(acc BankAccount) xmlRachunek {
	return xmlRachunek{
		NrRB:         acc.Number,
		NazwaBanku:   acc.BankName,
		OpisRachunku: acc.Description,
	}
}

func amount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func quantity(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
