package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmployeeExtraction(t *testing.T) {
	html := `<html><body><ul>
		<li class="employee-card">
			<span class="name">Jane Doe</span>
			<p class="headline">Principal Engineer</p>
			<a href="/in/jane-doe">view profile</a>
		</li>
	</ul></body></html>`

	employees := extractEmployees(docFromHTML(t, html))

	require.Len(t, employees, 1)
	require.Equal(t, "Jane Doe", employees[0].Name)
	require.Equal(t, "Principal Engineer", employees[0].Headline)
	require.Equal(t, "https://www.linkedin.com/in/jane-doe", employees[0].ProfileURL)
}

func TestEmployeeNameFromProfileLink(t *testing.T) {
	html := `<html><body><ul>
		<li class="people-result"><a href="https://www.linkedin.com/in/john-smith">John Smith</a></li>
	</ul></body></html>`

	employees := extractEmployees(docFromHTML(t, html))

	require.Len(t, employees, 1)
	require.Equal(t, "John Smith", employees[0].Name)
	require.Equal(t, "Employee", employees[0].Headline)
	require.Equal(t, "https://www.linkedin.com/in/john-smith", employees[0].ProfileURL)
}

func TestEmployeeNameQualification(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		wantLen  int
	}{
		{"too short", "JS", 0},
		{"no letters", "12345", 0},
		{"too long", strings.Repeat("n", 100), 0},
		{"valid", "Ana Li", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := fmt.Sprintf(`<html><body><ul>
				<li class="member-item"><span class="name">%s</span></li>
			</ul></body></html>`, tt.rendered)
			employees := extractEmployees(docFromHTML(t, html))
			require.Len(t, employees, tt.wantLen)
		})
	}
}

func TestEmployeeHeadlineTruncated(t *testing.T) {
	html := fmt.Sprintf(`<html><body><ul>
		<li class="employee">
			<span class="name">Jane Doe</span>
			<p class="occupation">%s</p>
		</li>
	</ul></body></html>`, strings.Repeat("h", 400))

	employees := extractEmployees(docFromHTML(t, html))

	require.Len(t, employees, 1)
	require.Len(t, employees[0].Headline, MaxHeadlineLen)
}

func TestEmployeeCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i := 0; i < 70; i++ {
		fmt.Fprintf(&b, `<li class="employee"><span class="name">Person Number%d</span></li>`, i)
	}
	b.WriteString("</ul></body></html>")

	employees := extractEmployees(docFromHTML(t, b.String()))

	require.Len(t, employees, MaxEmployees)
	require.Equal(t, "Person Number0", employees[0].Name)
}

func TestEmployeesEmptyWhenNoContainersMatch(t *testing.T) {
	html := `<html><body>
		<ul><li class="nav-item"><span class="name">Not A Person</span></li></ul>
	</body></html>`

	employees := extractEmployees(docFromHTML(t, html))
	require.Empty(t, employees)
}

func TestEmployeeAbsoluteProfileURLKeptAsIs(t *testing.T) {
	html := `<html><body><ul>
		<li class="profile-card">
			<span class="name">Jane Doe</span>
			<a href="https://other.example.com/in/jane">profile</a>
		</li>
	</ul></body></html>`

	employees := extractEmployees(docFromHTML(t, html))

	require.Len(t, employees, 1)
	require.Equal(t, "https://other.example.com/in/jane", employees[0].ProfileURL)
}
