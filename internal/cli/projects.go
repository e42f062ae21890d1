package cli

import (
	"context"
	"fmt"
)

// Projects lists the projects of the selected organization.
func (a *App) Projects(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}

	projects, err := a.api.ListProjects(ctx, octx.Organization.UUID, 1, listPageSize)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		printlnFn("No projects yet.")
		return nil
	}
	for _, p := range projects {
		marker := " "
		if p.Archived() {
			marker = "a"
		}
		printlnFn(fmt.Sprintf("%s %-24s %s", marker, p.ProfileName, p.Name))
	}
	return nil
}

// Project shows a single project of the selected organization.
func (a *App) Project(ctx context.Context, profileName string) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}

	p, err := a.api.FindProjectByProfileName(ctx, octx.Organization.UUID, profileName)
	if err != nil {
		return err
	}

	printlnFn("Project: ", p.Name, "("+p.ProfileName+")")
	if p.ShortDescription != "" {
		printlnFn("  ", p.ShortDescription)
	}
	printlnFn("  created", p.CreatedAt.Format("2006-01-02"))
	if p.Archived() {
		printlnFn("  archived", p.ArchivedAt.Format("2006-01-02"))
	}
	return nil
}
