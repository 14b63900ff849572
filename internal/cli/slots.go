package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

type SlotsCmd struct {
	Postcode string `arg:"" help:"UK postcode of the property."`
	Service  int64  `arg:"" help:"Service id."`
	Date     string `short:"d" help:"Day to list (YYYY-MM-DD); defaults to today."`
	StaffID  int64  `short:"s" help:"Only slots this staff member can take."`
}

func (c *SlotsCmd) Validate() error {
	if _, err := domain.ValidatePostcode(c.Postcode); err != nil {
		return err
	}
	if c.Service <= 0 {
		return fmt.Errorf("service id must be positive")
	}
	return nil
}

func (c *SlotsCmd) Run(ctx *Context) error {
	postcode, err := domain.ValidatePostcode(c.Postcode)
	if err != nil {
		return err
	}

	date := ctx.Now().In(ctx.Loc)
	if c.Date != "" {
		date, err = time.ParseInLocation(domain.DateFormat, c.Date, ctx.Loc)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
	}

	req := opsapi.SlotsRequest{Postcode: postcode, ServiceID: c.Service, Date: date}
	if c.StaffID > 0 {
		req.StaffID = &c.StaffID
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slots, err := ctx.Ops.GetSlots(reqCtx, req)
	if err != nil {
		return describe(err)
	}

	fmt.Fprint(ctx.Out, RenderSlots(date, slots))
	return nil
}
