package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/submit_guest_details"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

type BookCmd struct {
	BookingTimeout time.Duration `help:"Time allowed for the whole booking." default:"15m"`
}

// Run walks the guest booking flow against a running portal
func (c *BookCmd) Run(ctx *Context) error {
	if ctx.Portal == nil {
		return errors.New("portal URL is not configured")
	}
	p := ctx.Portal

	// 1. Postcode
	var postcode string
	err := huh.NewInput().
		Title("Postcode").
		Description("Where should we clean?").
		Value(&postcode).
		Validate(func(s string) error {
			_, err := domain.ValidatePostcode(s)
			return err
		}).
		Run()
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), c.BookingTimeout)
	defer cancel()

	pc, err := p.SubmitPostcode(reqCtx, postcode)
	if err != nil {
		return err
	}
	if len(pc.Services) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("No services are offered at "+pc.Postcode))
		return nil
	}

	// 2. Service and booking type
	var (
		serviceID int64
		mode      = string(domain.BookingSingle)
	)
	options := make([]huh.Option[int64], 0, len(pc.Services))
	for _, s := range pc.Services {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%d min, £%.2f)", s.Name, s.DurationMinutes, s.Price), s.ID))
	}
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Service").
				Options(options...).
				Value(&serviceID),
			huh.NewSelect[string]().
				Title("How often?").
				Options(
					huh.NewOption("Just once", string(domain.BookingSingle)),
					huh.NewOption("Regularly", string(domain.BookingSubscription)),
				).
				Value(&mode),
		),
	).Run()
	if err != nil {
		return err
	}
	if _, err := p.ChooseService(reqCtx, serviceID, mode); err != nil {
		return err
	}

	// 3. Subscription cadence
	if mode == string(domain.BookingSubscription) {
		if err := c.chooseSubscription(reqCtx, p); err != nil {
			return err
		}
	}

	// 4. Date and time
	date, at, err := c.chooseSlot(reqCtx, ctx, p)
	if err != nil {
		return err
	}
	if _, err := p.SelectSlot(reqCtx, date, at); err != nil {
		return err
	}

	// 5. Guest details
	var (
		details submit_guest_details.GuestDetailsRequest
		notes   string
	)
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&details.Name),
			huh.NewInput().Title("Email").Value(&details.Email),
			huh.NewInput().Title("Phone").Value(&details.Phone),
			huh.NewText().Title("Address").Value(&details.Address),
			huh.NewText().Title("Notes for the cleaner").Value(&notes),
		),
	).Run()
	if err != nil {
		return err
	}
	if notes != "" {
		details.Notes = &notes
	}

	done, err := p.SubmitDetails(reqCtx, details)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, titleStyle.Render("Booking received"))
	fmt.Fprintf(ctx.Out, "reference: %s\n", done.Reference)
	if done.Booking != nil {
		fmt.Fprintf(ctx.Out, "when:      %s %s\n", done.Booking.Date, done.Booking.Time)
	}
	return nil
}

func (c *BookCmd) chooseSubscription(ctx context.Context, p *PortalClient) error {
	opts, err := p.SubscriptionOptions(ctx)
	if err != nil {
		return err
	}

	var (
		frequency = string(domain.FrequencyWeekly)
		months    = 3
	)
	freqOptions := make([]huh.Option[string], 0, len(opts.Frequencies))
	for _, f := range opts.Frequencies {
		freqOptions = append(freqOptions, huh.NewOption(f, f))
	}
	monthOptions := make([]huh.Option[int], 0, len(opts.Durations))
	for _, m := range opts.Durations {
		monthOptions = append(monthOptions, huh.NewOption(strconv.Itoa(m)+" months", m))
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Frequency").Options(freqOptions...).Value(&frequency),
			huh.NewSelect[int]().Title("For how long?").Options(monthOptions...).Value(&months),
		),
	).Run()
	if err != nil {
		return err
	}

	_, err = p.ChooseSubscription(ctx, frequency, months)
	return err
}

// chooseSlot asks for a date until the portal returns at least one available slot
func (c *BookCmd) chooseSlot(ctx context.Context, app *Context, p *PortalClient) (string, string, error) {
	date := app.Now().In(app.Loc).AddDate(0, 0, 1).Format(domain.DateFormat)
	for {
		err := huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&date).
			Validate(func(s string) error {
				_, err := time.Parse(domain.DateFormat, s)
				return err
			}).
			Run()
		if err != nil {
			return "", "", err
		}

		slots, err := p.Slots(ctx, date)
		if err != nil {
			return "", "", err
		}
		if slots.Error != "" {
			fmt.Fprintln(app.Out, unavailableStyle.Render(slots.Error))
			continue
		}

		var options []huh.Option[string]
		for _, s := range slots.Slots {
			if s.Available {
				options = append(options, huh.NewOption(s.Time, s.Time))
			}
		}
		if len(options) == 0 {
			fmt.Fprintln(app.Out, mutedStyle.Render("Nothing free on "+date+", try another day"))
			continue
		}

		var at string
		err = huh.NewSelect[string]().Title("Time").Options(options...).Value(&at).Run()
		if err != nil {
			return "", "", err
		}
		return date, at, nil
	}
}
