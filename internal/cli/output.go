package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Staff:
		o.printStaff(v)
	case AuthResult:
		o.printAuthResult(v)
	case Participant:
		o.printParticipant(v)
	case ParticipantList:
		o.printParticipantList(v)
	case ActionLog:
		o.printActionLog(v)
	case ImportReport:
		o.printImportReport(v)
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Staff response type (matches API)
type Staff struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AuthResult combines staff account and token
type AuthResult struct {
	Staff        Staff  `json:"staff"`
	SessionToken string `json:"session_token"`
}

// CheckpointFlags response type
type CheckpointFlags struct {
	GateIn       bool `json:"gate_in"`
	CheckIn      bool `json:"check_in"`
	CheckOut     bool `json:"check_out"`
	GateOut      bool `json:"gate_out"`
	InsideCampus bool `json:"inside_campus"`
}

// Participant response type
type Participant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	College       string          `json:"college,omitempty"`
	PaymentStatus string          `json:"payment_status"`
	Category      string          `json:"category"`
	Events        []string        `json:"events,omitempty"`
	Flags         CheckpointFlags `json:"flags"`
	Status        string          `json:"status"`
	LastActionAt  time.Time       `json:"last_action_at"`
}

// ParticipantList response type
type ParticipantList struct {
	Participants []Participant `json:"participants"`
	Count        int           `json:"count"`
}

// ActionLogEntry response type
type ActionLogEntry struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Action        string    `json:"action"`
	Actor         string    `json:"actor"`
	Timestamp     time.Time `json:"timestamp"`
}

// ActionLog response type
type ActionLog struct {
	Entries []ActionLogEntry `json:"entries"`
	Count   int              `json:"count"`
}

// RowError response type
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport response type
type ImportReport struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Stats response type
type Stats struct {
	Total        int            `json:"total"`
	InsideCampus int            `json:"inside_campus"`
	Paid         int            `json:"paid"`
	ByStatus     map[string]int `json:"by_status"`
	ByCategory   map[string]int `json:"by_category"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printStaff(s Staff) {
	fmt.Printf("Staff: %s (%s)\n", s.DisplayName, s.Username)
	fmt.Printf("Role: %s\n", s.Role)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printStaff(a.Staff)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printParticipant(p Participant) {
	fmt.Printf("Participant: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Email: %s\n", p.Email)
	if p.Phone != "" {
		fmt.Printf("Phone: %s\n", p.Phone)
	}
	if p.College != "" {
		fmt.Printf("College: %s\n", p.College)
	}
	fmt.Printf("Category: %s\n", p.Category)
	fmt.Printf("Payment: %s\n", p.PaymentStatus)
	fmt.Printf("Status: %s\n", p.Status)
	insideStr := "no"
	if p.Flags.InsideCampus {
		insideStr = "yes"
	}
	fmt.Printf("Inside Campus: %s\n", insideStr)
	if len(p.Events) > 0 {
		fmt.Printf("Events: %s\n", strings.Join(p.Events, ", "))
	}
	if !p.LastActionAt.IsZero() {
		fmt.Printf("Last Action: %s\n", p.LastActionAt.Format(time.RFC3339))
	}
}

func (o *Output) printParticipantList(l ParticipantList) {
	fmt.Printf("Participants (%d):\n", l.Count)
	for _, p := range l.Participants {
		inside := ""
		if p.Flags.InsideCampus {
			inside = " [inside]"
		}
		fmt.Printf("  %s  %-30s %-15s %s%s\n", p.ID, p.Name, p.Category, p.Status, inside)
	}
}

func (o *Output) printActionLog(l ActionLog) {
	fmt.Printf("Log entries (%d):\n", l.Count)
	for _, e := range l.Entries {
		fmt.Printf("  [%s] %s %s by %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.ParticipantID, e.Actor)
	}
}

func (o *Output) printImportReport(r ImportReport) {
	fmt.Printf("Imported: %d\n", r.Imported)
	fmt.Printf("Skipped: %d\n", r.Skipped)
	for _, e := range r.Errors {
		fmt.Printf("  row %d: %s\n", e.Row, e.Reason)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Total: %d\n", s.Total)
	fmt.Printf("Inside Campus: %d\n", s.InsideCampus)
	fmt.Printf("Paid: %d\n", s.Paid)
	if len(s.ByStatus) > 0 {
		fmt.Println("By Status:")
		printCountMap(s.ByStatus)
	}
	if len(s.ByCategory) > 0 {
		fmt.Println("By Category:")
		printCountMap(s.ByCategory)
	}
}

func printCountMap(m map[string]int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, m[k])
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
