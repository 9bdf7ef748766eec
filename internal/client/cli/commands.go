package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recordkeeper/internal/client/identity"
	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/pipeline"
	"github.com/dmitrijs2005/recordkeeper/internal/client/validation"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
)

const previewLength = 100

func (a *App) List(ctx context.Context) error {
	records := a.service.List(ctx)
	if len(records) == 0 {
		printlnFn(fmt.Sprintf("You haven't created any %ss yet.", a.variant.Noun))
		printlnFn(fmt.Sprintf("Start by describing your first %s: type 'create'.", a.variant.Noun))
		return nil
	}
	for _, r := range records {
		printlnFn(summary(r))
	}
	return nil
}

func summary(r models.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  [%s]", r.ID, r.Name, r.Status)
	if r.DueDate != "" {
		fmt.Fprintf(&b, "  due %s", r.DueDate)
	}
	fmt.Fprintf(&b, "  created %s", r.CreatedAt.Local().Format(models.DateLayout))
	if r.Description != "" {
		fmt.Fprintf(&b, "\n    %s", preview(r.Description))
	}
	return b.String()
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLength {
		return s
	}
	return string(runes[:previewLength]) + "..."
}

func (a *App) Create(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	desc, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	sub := pipeline.Submission{Name: name, Description: desc}
	if a.variant.RequireDueDate {
		lo, hi := validation.DateBounds(a.today())
		prompt := fmt.Sprintf("Due date (%s .. %s)", lo.Format(models.DateLayout), hi.Format(models.DateLayout))
		if sub.DueDate, err = GetSimpleText(a.reader, prompt, a.out); err != nil {
			return err
		}
	}

	rec, err := a.service.Create(ctx, sub)
	switch {
	case err == nil:
		printlnFn(fmt.Sprintf("%s created successfully: %s", capitalize(a.variant.Noun), rec.ID))
		return nil
	case errors.Is(err, common.ErrBusy):
		printlnFn(fmt.Sprintf("A %s is already being generated, please wait.", a.variant.Noun))
	case errors.Is(err, common.ErrValidation):
		printlnFn(validationMessage(err))
	case errors.Is(err, common.ErrPersistence):
		printlnFn(fmt.Sprintf("%s created (%s) but could not be saved: %v", capitalize(a.variant.Noun), rec.ID, err))
	default:
		printlnFn(fmt.Sprintf("Error generating %s. Please try again.", a.variant.Noun))
	}
	return err
}

func validationMessage(err error) string {
	var ve *validation.Error
	if !errors.As(err, &ve) {
		return err.Error()
	}
	switch ve.Code {
	case validation.CodeDateOutOfRange, validation.CodeDateUnparseable:
		return "Please select a due date between today and 2 years from today."
	default:
		return ve.Msg
	}
}

// askID returns id, or prompts for one when it is empty.
func (a *App) askID(id, action string) (string, error) {
	if id != "" {
		return id, nil
	}
	return GetSimpleText(a.reader, fmt.Sprintf("Enter %s id to %s", a.variant.Noun, action), a.out)
}

func (a *App) notFound(id string) {
	printlnFn(fmt.Sprintf("No %s with id %q.", a.variant.Noun, id))
}

func (a *App) report(id string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		a.notFound(id)
	case errors.Is(err, common.ErrValidation):
		printlnFn(validationMessage(err))
	case errors.Is(err, common.ErrPersistence):
		printlnFn("Warning: change kept for this session but not saved: " + err.Error())
	default:
		printlnFn("Error: " + err.Error())
	}
	return err
}

func (a *App) Show(ctx context.Context, id string) error {
	id, err := a.askID(id, "show")
	if err != nil {
		return err
	}
	r, err := a.service.Get(ctx, id)
	if err != nil {
		return a.report(id, err)
	}
	printlnFn("Name:        " + r.Name)
	printlnFn("Description: " + r.Description)
	printlnFn("Status:      " + string(r.Status))
	if r.DueDate != "" {
		printlnFn("Due:         " + r.DueDate)
	}
	printlnFn("Created:     " + r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printlnFn("ID:          " + r.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	id, err := a.askID(id, "edit")
	if err != nil {
		return err
	}
	res, err := a.service.Edit(ctx, id)
	if err != nil {
		return a.report(id, err)
	}
	printlnFn(res.Title)
	printlnFn(res.Message)
	return nil
}

func (a *App) View(ctx context.Context, id string) error {
	id, err := a.askID(id, "view")
	if err != nil {
		return err
	}
	res, err := a.service.View(ctx, id)
	if err != nil {
		return a.report(id, err)
	}
	printlnFn(res.Title)
	printlnFn(res.Message)
	return nil
}

func (a *App) Rename(ctx context.Context, id string) error {
	id, err := a.askID(id, "rename")
	if err != nil {
		return err
	}
	cur, err := a.service.Get(ctx, id)
	if err != nil {
		return a.report(id, err)
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("New name (empty keeps %q)", cur.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = cur.Name
	}
	desc, err := GetSimpleText(a.reader, "New description (empty keeps current, '-' clears)", a.out)
	if err != nil {
		return err
	}
	switch desc {
	case "":
		desc = cur.Description
	case "-":
		desc = ""
	}

	if _, err := a.service.Rename(ctx, id, name, desc); err != nil {
		return a.report(id, err)
	}
	printlnFn("Updated.")
	return nil
}

func (a *App) Done(ctx context.Context, id string) error {
	id, err := a.askID(id, "complete")
	if err != nil {
		return err
	}
	r, err := a.service.Complete(ctx, id)
	if err != nil {
		return a.report(id, err)
	}
	printlnFn(fmt.Sprintf("%q marked %s.", r.Name, r.Status))
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	id, err := a.askID(id, "delete")
	if err != nil {
		return err
	}
	if _, err := a.service.Get(ctx, id); err != nil {
		return a.report(id, err)
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Are you sure you want to delete this %s?", a.variant.Noun), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.service.Delete(ctx, id); err != nil {
		return a.report(id, err)
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	printlnFn(a.userName)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	counts := map[models.Status]int{}
	records := a.service.List(ctx)
	for _, r := range records {
		counts[r.Status]++
	}
	printlnFn(fmt.Sprintf("%d %ss: %d pending, %d generated, %d completed",
		len(records), a.variant.Noun,
		counts[models.StatusPending], counts[models.StatusGenerated], counts[models.StatusCompleted]))

	ops, err := a.recorder.Snapshot()
	if err != nil {
		return err
	}
	for _, op := range ops {
		printlnFn(fmt.Sprintf("%-8s ok=%d failed=%d time=%s", op.Operation, op.Success, op.Errors, op.TotalDuration.Round(1e6)))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		return err
	}
	a.userName = identity.DefaultUsername
	printlnFn("Logged out.")
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
