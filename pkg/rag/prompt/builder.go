package prompt

import (
	"fmt"
	"strings"

	"grant-assist-be/internal/dto"
)

// Builder assembles the system prompt for the grant assistant: role clause,
// optional applicant profile clause, then one clause per grounded document.
type Builder struct {
	profile   *dto.UserProfile
	documents []documentClause
}

type documentClause struct {
	fileName string
	excerpt  string
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithProfile attaches the caller's profile. Field values are interpolated
// verbatim; they are free text and are not validated.
func (b *Builder) WithProfile(profile *dto.UserProfile) *Builder {
	b.profile = profile
	return b
}

// AddDocument appends a grounded excerpt clause.
func (b *Builder) AddDocument(fileName, excerpt string) *Builder {
	b.documents = append(b.documents, documentClause{fileName: fileName, excerpt: excerpt})
	return b
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeProfile(&prompt)
	b.writeDocuments(&prompt)

	return prompt.String()
}

func (b *Builder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("You are a knowledgeable assistant helping Canadian musicians find and apply for music grants. ")
	prompt.WriteString("You know the major Canadian funding bodies (FACTOR, Musicaction, Canada Council for the Arts, provincial arts councils) ")
	prompt.WriteString("and you give practical, specific guidance on eligibility, deadlines, budgets and application writing. ")
	prompt.WriteString("When reference documents are provided below, ground your answer in them.")
}

func (b *Builder) writeProfile(prompt *strings.Builder) {
	if b.profile == nil {
		return
	}

	p := b.profile
	prompt.WriteString("\n\nThe user has shared their profile: ")
	prompt.WriteString(fmt.Sprintf("career stage: %s, genre: %s", p.CareerStage, p.Genre))
	if p.StreamingNumbers != "" {
		prompt.WriteString(fmt.Sprintf(", streaming numbers: %s", p.StreamingNumbers))
	}
	if p.PreviousGrants != "" {
		prompt.WriteString(fmt.Sprintf(", previous grants: %s", p.PreviousGrants))
	}
	prompt.WriteString(fmt.Sprintf(". They are working on a %s project with a budget of %s. ", p.ProjectType, p.ProjectBudget))
	prompt.WriteString("Tailor your recommendations to this profile.")
}

func (b *Builder) writeDocuments(prompt *strings.Builder) {
	if len(b.documents) == 0 {
		return
	}

	prompt.WriteString("\n\nRelevant excerpts from the user's uploaded documents:")
	for _, d := range b.documents {
		prompt.WriteString(fmt.Sprintf("\n\nFrom document \"%s\": %s", d.fileName, d.excerpt))
	}
	prompt.WriteString("\n\nCite these documents when they inform your answer.")
}
