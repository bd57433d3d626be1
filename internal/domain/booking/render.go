package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/oncampus/gearbot/internal/domain/equipment"
)

// The interfaces this assistant fronts (chat widgets, messaging bots) render
// plain text only, so all output uses the original fixed-width templates.

const separator = "─────────────────────"

func fmtTime(t time.Time) string {
	return t.Format("3:04 PM")
}

func fmtDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func fmtShortDate(t time.Time) string {
	return t.Format("2 Jan")
}

func renderEquipmentList(items []equipment.Equipment) string {
	var b strings.Builder
	b.WriteString("📦 Available Equipment:\n")
	b.WriteString(separator + "\n")
	for i, eq := range items {
		fmt.Fprintf(&b, "%d. %s — %d/%d available (%s)\n",
			i+1, eq.Name, eq.AvailableQuantity, eq.TotalQuantity, eq.Condition)
	}
	b.WriteString(separator)
	return b.String()
}

func renderAvailable(name string, start, end time.Time) string {
	return fmt.Sprintf("✅ %s is available on %s from %s–%s.",
		name, fmtDate(start), fmtTime(start), fmtTime(end))
}

func renderConflict(name string, conflict *Booking, nextFree time.Time) string {
	return fmt.Sprintf("❌ %s is booked from %s to %s by %s. Next available after %s.",
		name, fmtTime(conflict.StartTime), fmtTime(conflict.EndTime),
		conflict.ClubName, fmtTime(nextFree))
}

func renderCreateConflict(name string, conflict *Booking) string {
	return fmt.Sprintf("❌ %s is already booked from %s to %s by %s. Please choose a different time slot.",
		name, fmtTime(conflict.StartTime), fmtTime(conflict.EndTime), conflict.ClubName)
}

func renderNoUnits(name string) string {
	return fmt.Sprintf("❌ All units of %s are currently checked out.", name)
}

func renderConfirmation(b *Booking) string {
	var sb strings.Builder
	sb.WriteString("✅ Booking Confirmed!\n")
	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "Equipment : %s\n", b.EquipmentName)
	fmt.Fprintf(&sb, "Club      : %s\n", b.ClubName)
	fmt.Fprintf(&sb, "Date      : %s\n", fmtDate(b.StartTime))
	fmt.Fprintf(&sb, "Time      : %s – %s\n", fmtTime(b.StartTime), fmtTime(b.EndTime))
	fmt.Fprintf(&sb, "Booking ID: %s\n", b.ID)
	fmt.Fprintf(&sb, "Contact   : %s (%s)\n", b.BookedBy, b.ContactHandle)
	sb.WriteString(separator + "\n")
	sb.WriteString("Save your Booking ID — you will need it to cancel or return.")
	return sb.String()
}

func renderClubBookings(club string, bookings []Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Active Bookings for %s:\n", club)
	b.WriteString(separator + "\n")
	for i := range bookings {
		bk := &bookings[i]
		fmt.Fprintf(&b, "%s | %s | %s | %s–%s\n",
			bk.ID, bk.EquipmentName, fmtShortDate(bk.StartTime),
			fmtTime(bk.StartTime), fmtTime(bk.EndTime))
	}
	b.WriteString(separator)
	return b.String()
}

func renderActiveBookings(bookings []Booking) string {
	var b strings.Builder
	b.WriteString("📋 All Active Bookings:\n")
	b.WriteString(separator + "\n")
	for i := range bookings {
		bk := &bookings[i]
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s %s–%s\n",
			bk.ID, bk.EquipmentName, bk.ClubName, bk.BookedBy,
			fmtShortDate(bk.StartTime), fmtTime(bk.StartTime), fmtTime(bk.EndTime))
	}
	b.WriteString(separator)
	return b.String()
}
