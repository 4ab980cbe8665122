package dashboard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"franchise-ops/internal/models"
)

// CSVHeaders is the header row of every dashboard export.
func CSVHeaders() []string {
	return []string{"Section", "Metric", "Value"}
}

// WriteCSV renders view as Section/Metric/Value rows.
func WriteCSV(w io.Writer, view models.DashboardView) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeaders()); err != nil {
		return err
	}

	for _, row := range Rows(view) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// RenderCSV is WriteCSV into memory.
func RenderCSV(view models.DashboardView) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 8*1024))
	if err := WriteCSV(buffer, view); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Rows flattens the exportable parts of a view. Map-backed sections are
// emitted in key order so exports are byte-stable.
func Rows(view models.DashboardView) [][]string {
	s := view.Summary
	rows := [][]string{
		{"Summary", "Revenue Total", itoa(s.Revenue.Total)},
		{"Summary", "Revenue Change %", ftoa(s.Revenue.Change)},
		{"Summary", "Revenue Online", itoa(s.Revenue.Online)},
		{"Summary", "Revenue Walk-in", itoa(s.Revenue.WalkIn)},
		{"Summary", "Bookings Total", itoa(s.Bookings.Total)},
		{"Summary", "Bookings Change %", ftoa(s.Bookings.Change)},
		{"Summary", "Occupancy Rate", ftoa(s.Occupancy.Rate)},
		{"Summary", "Satisfaction Score", ftoa(s.Satisfaction.Score)},
		{"Summary", "Guests Today", itoa(s.Guests.Today)},
		{"Summary", "Guests Week", itoa(s.Guests.Week)},
	}
	if s.Revenue.Previous != nil {
		rows = append(rows, []string{"Summary", "Revenue Previous", itoa(*s.Revenue.Previous)})
	}
	if s.Franchises != nil {
		rows = append(rows,
			[]string{"Summary", "Franchises Active", itoa(s.Franchises.Active)},
			[]string{"Summary", "Franchises Total", itoa(s.Franchises.Total)},
		)
	}

	for _, t := range view.RevenueTrends {
		rows = append(rows, []string{"Revenue Trend", t.Name, itoa(t.Revenue)})
	}
	for _, f := range view.TopFranchises {
		rows = append(rows,
			[]string{"Top Franchise", f.Name + " Revenue", itoa(f.Revenue)},
			[]string{"Top Franchise", f.Name + " Satisfaction", ftoa(f.Satisfaction)},
		)
	}
	for _, b := range view.BookingDistribution {
		rows = append(rows, []string{"Booking Distribution", b.Name, itoa(b.Value)})
	}
	for _, p := range view.PaymentStatus {
		rows = append(rows, []string{"Payment Status", p.Name, itoa(p.Value)})
	}
	for _, o := range view.OfferUtilization {
		rows = append(rows, []string{"Offer Utilization", o.Name, itoa(o.Value)})
	}

	om := view.OperationalMetrics
	rows = append(rows,
		[]string{"Operations", "Bookings Confirmed", itoa(om.Bookings.Confirmed)},
		[]string{"Operations", "Bookings Pending", itoa(om.Bookings.Pending)},
		[]string{"Operations", "Bookings Cancelled", itoa(om.Bookings.Cancelled)},
		[]string{"Operations", "Check-ins", itoa(om.RealTime.CheckIns)},
		[]string{"Operations", "Staff Present", itoa(om.RealTime.StaffPresent)},
		[]string{"Operations", "Active Alerts", itoa(om.RealTime.ActiveAlerts)},
	)
	for _, c := range om.CoinUsage {
		rows = append(rows, []string{"Coin Usage", c.Franchise, fmt.Sprintf("%d/%d (%s)", c.Redeemed, c.Issued, c.Status)})
	}

	keys := make([]string, 0, len(view.SessionTypeData))
	for k := range view.SessionTypeData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		st := view.SessionTypeData[k]
		rows = append(rows, []string{"Session Type", k + " Revenue", itoa(st.Revenue)})
	}

	return rows
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
