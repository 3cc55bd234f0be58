package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/palette"
	"github.com/BelalFares97/MultiTool/pkg/table"
)

// Decisions recognized by the decision banner. Anything else is shown as a review.
const (
	DecisionApproved = "Approved"
	DecisionRejected = "Rejected"
	DecisionReview   = "Review"
)

// DefaultClientName is printed when the organization has no name.
const DefaultClientName = "Financial Institution"

// RiskReport renders the credit risk assessment: applicant profile and the
// decision on the first page, bureau metrics and the optional narrative after.
func (r *Renderer) RiskReport(in RiskInput) (*Artifact, error) {
	if in.Form == nil {
		return nil, rerrors.InputMissing("risk", "form")
	}
	if in.Prediction == nil {
		return nil, rerrors.InputMissing("risk", "prediction")
	}

	cfg := r.cfg.Risk
	rc := &riskComposer{r: r, in: in, now: r.now()}

	return r.run(job{
		kind:   "risk",
		name:   riskFileName(in.Form.Text("customer_id")),
		layout: cfg.Layout,
		meta: layout.Metadata{
			Title:    cfg.Branding.Title,
			Author:   cfg.Branding.Author,
			Subject:  rc.clientName(),
			Creator:  Creator,
			Keywords: []string{"credit", "risk", rc.decision()},
		},
		chrome:  riskChrome{brand: cfg.Branding},
		compose: rc.compose,
	})
}

type riskComposer struct {
	r   *Renderer
	in  RiskInput
	now time.Time
}

func (rc *riskComposer) clientName() string {
	if s := strings.TrimSpace(rc.in.Org.ClientName); s != "" {
		return s
	}
	return DefaultClientName
}

func (rc *riskComposer) decision() string {
	if d := strings.TrimSpace(rc.in.Prediction.Decision); d != "" {
		return d
	}
	return DecisionReview
}

// ReportID is "CR-<customer_id>-<last four digits of the unix millisecond clock>".
func ReportID(customerID string, now time.Time) string {
	return fmt.Sprintf("CR-%s-%04d", customerID, now.UnixMilli()%10000)
}

// DecisionColor returns the banner color for a decision.
func DecisionColor(decision string) palette.Color {
	switch {
	case strings.EqualFold(decision, DecisionApproved):
		return palette.Approved
	case strings.EqualFold(decision, DecisionRejected):
		return palette.Rejected
	default:
		return palette.Review
	}
}

func (rc *riskComposer) compose(c *layout.Context) {
	title := rc.r.cfg.Risk.Branding.Title

	c.BeginPage(title)
	rc.hero(c)
	rc.decisionBanner(c)
	rc.pairs(c, "Customer Profile", rc.profileRows())
	rc.pairs(c, "Employment & Financial Stability", rc.employmentRows())
	rc.pairs(c, "Requested Facility & Collateral", rc.facilityRows())

	c.BreakPage(title)
	c.Advance(2)
	rc.metrics(c)

	if n := rc.in.Narrative; n != nil && n.Status == "success" && strings.TrimSpace(n.Analysis) != "" {
		label := rc.r.cfg.Risk.Branding.NarrativeTitle
		if label == "" {
			label = "Analysis"
		}
		darkBanner(c, label, 12)
		c.Advance(4)
		renderNarrative(c, c.Left()+4, c.Width()-8, n.Analysis)
	}
}

func (rc *riskComposer) hero(c *layout.Context) {
	y := c.EnsureSpace(24)
	x := c.Left()

	if src := rc.in.Org.Logo; src != "" {
		if err := rc.drawLogo(c, src, x, y); err != nil {
			c.Logger().Warn("logo skipped", "error", err)
		} else {
			x += 20
		}
	}

	c.SetFont("B", 18)
	c.SetTextColor(palette.BrandDark)
	c.Text(x, y+6, rc.clientName())

	c.SetFont("", 9.5)
	c.SetTextColor(riskTextMed)
	c.Text(x, y+11, "Report ID: "+ReportID(rc.in.Form.Text("customer_id"), rc.now))
	c.Text(x, y+16, "Generated: "+rc.now.Format("02/01/2006, 15:04:05"))
	c.Advance(24)
}

func (rc *riskComposer) drawLogo(c *layout.Context, src string, x, y float64) error {
	img, err := loadLogo(src)
	if err != nil {
		return err
	}
	return c.Image("logo", img.kind, bytes.NewReader(img.data), x, y, 16, 16)
}

func (rc *riskComposer) decisionBanner(c *layout.Context) {
	p := rc.in.Prediction
	decision := rc.decision()
	y := c.EnsureSpace(28)

	c.SetFillColor(DecisionColor(decision))
	c.RoundedRect(c.Left(), y, c.Width(), 24, 4, "F")

	c.SetTextColor(palette.White)
	c.SetFont("B", 15)
	c.Text(c.Left()+8, y+10, "DECISION: "+toUpper(decision))

	c.SetFont("B", 9.5)
	c.Text(c.Left()+8, y+18, "Confidence Score: "+probability(p.Confidence))
	acceptance := NotAvailable
	if v, ok := p.AllProbabilities[DecisionApproved]; ok {
		acceptance = probability(v)
	}
	c.TextRight(c.Right()-8, y+18, "Acceptance Probability: "+acceptance)
	c.Advance(28)
}

func (rc *riskComposer) profileRows() [][]string {
	f := rc.in.Form
	return [][]string{
		{"Customer ID", f.Value("customer_id"), "National ID", f.Value("national_id")},
		{"Nationality", f.Category("nationality_group"), "Gender", f.Category("gender")},
		{"Age", f.years("age"), "Marital Status", f.Category("marital_status")},
		{"Education", f.Category("education_level"), "Dependents", f.Value("dependents")},
	}
}

func (rc *riskComposer) employmentRows() [][]string {
	f := rc.in.Form
	return [][]string{
		{"Employment Type", f.Category("employment_type"), "Monthly Salary", f.amount("monthly_salary")},
		{"Employer Sector", f.Category("employer_sector"), "Job Title", f.Category("job_title")},
		{"Years of Exp.", f.years("employment_years"), "Payment Method", f.Category("salary_payment_method")},
		{"Stability Score", f.percent("income_stability_score", 0), "DTI Ratio", f.percent("dti_ratio", 1)},
	}
}

func (rc *riskComposer) facilityRows() [][]string {
	f := rc.in.Form
	return [][]string{
		{"Property Type", f.Category("property_type"), "Property Value", f.amount("property_value")},
		{"Project Status", f.Category("project_status"), "Down Payment", f.amount("down_payment")},
		{"Finance Amount", f.amount("financing_amount"), "LTV Ratio", f.percent("ltv_ratio", 1)},
		{"Takaful Coverage", f.amount("takaful_coverage"), "Term Years", f.years("takaful_term_years")},
	}
}

// pairs draws a banner and a headerless label/value grid with two pairs per row.
func (rc *riskComposer) pairs(c *layout.Context, title string, rows [][]string) {
	fill := labelFill
	label := table.Column{Width: 35, Bold: true, Fill: &fill}
	cols := []table.Column{label, {}, label, {}}

	st := table.GridStyle()
	st.FontSize = 9
	st.Padding = 3.5
	st.TextColor = riskTextDark
	st.ShowHeader = false

	data := table.Data{Rows: rows}
	darkBanner(c, title, table.LeadHeight(c, c.Width(), data, cols, st))
	table.Render(c, c.Left(), c.Width(), data, cols, st)
	c.Advance(8)
}

// MetricStatus grades the bureau metrics shown on the second page. Absent
// values grade as the cautious outcome.
func MetricStatus(f FormData) map[string]string {
	status := func(ok bool, good, bad string) string {
		if ok {
			return good
		}
		return bad
	}
	score, hasScore := f.Number("credit_score")
	missed, hasMissed := f.Number("missed_payments_12m")
	bounced, hasBounced := f.Number("bounce_cheques_12m")
	util, hasUtil := f.Number("utilization_ratio")
	fraud, hasFraud := f.Number("fraud_flags")

	return map[string]string{
		"credit_score":        status(hasScore && score > 650, "Low Risk", "Review"),
		"missed_payments_12m": status(hasMissed && missed == 0, "Clear", "Warning"),
		"bounce_cheques_12m":  status(hasBounced && bounced == 0, "Clear", "Warning"),
		"utilization_ratio":   status(hasUtil && util < 0.7, "Healthy", "High"),
		"fraud_flags":         status(hasFraud && fraud == 0, "None", "CRITICAL"),
	}
}

func (rc *riskComposer) metrics(c *layout.Context) {
	f := rc.in.Form
	st := MetricStatus(f)
	data := table.Data{
		Header: []string{"Metric", "Value", "Status"},
		Rows: [][]string{
			{"Credit Score (SIMAH)", f.Value("credit_score"), st["credit_score"]},
			{"Missed Payments (12m)", f.Value("missed_payments_12m"), st["missed_payments_12m"]},
			{"Bounce Cheques (12m)", f.Value("bounce_cheques_12m"), st["bounce_cheques_12m"]},
			{"Utilization Ratio", f.percent("utilization_ratio", 1), st["utilization_ratio"]},
			{"Fraud Flags", f.Value("fraud_flags"), st["fraud_flags"]},
		},
	}

	style := table.StripedStyle()
	style.FontSize = 9
	style.Padding = 3.5
	style.TextColor = riskTextDark
	alt := riskLightGray
	style.AltFill = &alt

	darkBanner(c, "Credit Risk Metrics (SIMAH/External)", table.LeadHeight(c, c.Width(), data, nil, style))
	table.Render(c, c.Left(), c.Width(), data, nil, style)
	c.Advance(16)
}
