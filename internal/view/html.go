package view

import (
	"fmt"
	"net/url"
	"strings"
)

// UnregisterPath is where a row's removal affordance points. The query
// carries the (activity, email) pair the row is scoped to.
const UnregisterPath = "/unregister"

// NoParticipantsText is shown on cards without participants.
const NoParticipantsText = "No participants yet — be the first!"

// ActivitiesHTML renders the activity list region: either the load-failure
// notice or the card grid.
func (v *ViewState) ActivitiesHTML() string {
	if msg := v.ListError(); msg != "" {
		return "<p>" + EscapeHTML(msg) + "</p>"
	}

	var b strings.Builder
	b.WriteString(`<div class="activities-grid">`)
	for _, c := range v.Cards() {
		writeCard(&b, c)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func writeCard(b *strings.Builder, c Card) {
	fmt.Fprintf(b, `<div class="activity-card" data-activity="%s">`, EscapeHTML(c.Name))
	fmt.Fprintf(b, `<div class="activity-card-head"><h4 class="activity-title">%s</h4><span class="badge">%d spots left</span></div>`,
		EscapeHTML(c.Name), c.SpotsLeft)
	fmt.Fprintf(b, `<p class="activity-desc">%s</p>`, EscapeHTML(c.Description))
	fmt.Fprintf(b, `<p class="activity-schedule"><strong>Schedule:</strong> %s</p>`, EscapeHTML(c.Schedule))

	b.WriteString(`<div class="participants-section"><h5>Participants</h5>`)
	if len(c.Rows) == 0 {
		fmt.Fprintf(b, `<p class="no-participants">%s</p>`, EscapeHTML(NoParticipantsText))
	} else {
		b.WriteString(`<ul class="participants-list">`)
		for _, r := range c.Rows {
			fmt.Fprintf(b, `<li><span class="participant">%s</span>`, EscapeHTML(r.Display))
			if r.Removable() {
				q := url.Values{"activity": {c.Name}, "email": {r.Email}}
				fmt.Fprintf(b, `<a class="remove-participant" href="%s?%s" title="Unregister">&#10005;</a>`,
					UnregisterPath, EscapeHTML(q.Encode()))
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div></div>`)
}

// OptionsHTML renders the dropdown entries, marking selected.
func (v *ViewState) OptionsHTML(selected string) string {
	var b strings.Builder
	for _, o := range v.Options() {
		sel := ""
		if o.Value != "" && o.Value == selected {
			sel = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, EscapeHTML(o.Value), sel, EscapeHTML(o.Label))
	}
	return b.String()
}

// BannerHTML renders the message banner. A hidden banner keeps its last
// text but carries the hidden class.
func (v *ViewState) BannerHTML() string {
	m := v.Banner.Message()
	class := string(m.Kind)
	if !m.Visible {
		class = strings.TrimSpace(class + " hidden")
	}
	return fmt.Sprintf(`<div id="message" class="%s">%s</div>`, EscapeHTML(class), EscapeHTML(m.Text))
}
