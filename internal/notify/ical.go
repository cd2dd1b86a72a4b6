package notify

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/slotwise/tempo/api/internal/model"
)

const productID = "-//tempo//EN"

// RenderInvitation encodes a meeting invitation for one recipient as an
// iCalendar document and returns the encoded bytes with the generated UID.
func RenderInvitation(event *model.Event, now time.Time) ([]byte, string, error) {
	uid := uuid.New().String()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropMethod, "REQUEST")
	cal.Children = append(cal.Children, toVEvent(event, uid, now))

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, "", fmt.Errorf("encode invitation: %w", err)
	}
	return buf.Bytes(), uid, nil
}

// toVEvent converts an Event to an ical VEVENT component. The first
// participant is treated as the organizer.
func toVEvent(event *model.Event, uid string, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, uid)
	ve.Props.SetText(ical.PropSummary, event.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.Start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.End)

	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	// ORGANIZER and ATTENDEE carry CAL-ADDRESS values, so the value is
	// set directly rather than via SetText, which would tag a spurious
	// VALUE=TEXT parameter onto the property.
	if len(event.Participants) > 0 {
		p := ical.NewProp(ical.PropOrganizer)
		p.Value = fmt.Sprintf("mailto:%s", event.Participants[0])
		ve.Props.Add(p)
	}
	for _, attendee := range event.Participants {
		p := ical.NewProp(ical.PropAttendee)
		p.Value = fmt.Sprintf("mailto:%s", attendee)
		ve.Props.Add(p)
	}
	return ve
}
