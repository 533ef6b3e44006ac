package service

import (
	"context"
	"errors"
	"testing"

	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressNotifier_Summarize(t *testing.T) {
	f := progressFixture()
	n := NewProgressNotifier(f.loader(), f.pilots, &fakeSMS{}, domain.InProgressBriefedOrTrained, echo)

	summary, err := n.Summarize(context.Background(), "p1", "spl", "en-US")
	require.NoError(t, err)

	assert.Equal(t, "SPL", summary.Program)
	assert.Equal(t, 2, summary.LessonsTotal)
	assert.Equal(t, 0, summary.LessonsCompleted)
	assert.Equal(t, 2, summary.LessonsInProgress)
	assert.Equal(t, "SPL: 0/2 lessons completed, 2 in progress", summary.Message)
}

func TestProgressNotifier_SendProgressSummary(t *testing.T) {
	f := progressFixture()
	sms := &fakeSMS{}
	n := NewProgressNotifier(f.loader(), f.pilots, sms, domain.InProgressBriefedOrTrained, echo)

	summary, err := n.SendProgressSummary(context.Background(), "p1", "", "en-US")
	require.NoError(t, err)

	assert.Equal(t, "SM123", summary.MessageID)
	assert.Equal(t, "+4520000000", sms.to)
	assert.Equal(t, summary.Message, sms.body)
}

func TestProgressNotifier_SendProgressSummaryErrors(t *testing.T) {
	f := progressFixture()

	n := NewProgressNotifier(f.loader(), f.pilots, &fakeSMS{}, domain.InProgressBriefedOrTrained, echo)
	_, err := n.SendProgressSummary(context.Background(), "i1", "", "en-US")
	assert.ErrorIs(t, err, domain.ErrNoMobilePhone)

	_, err = n.SendProgressSummary(context.Background(), "ghost", "", "en-US")
	assert.ErrorIs(t, err, domain.ErrPilotNotFound)

	n = NewProgressNotifier(f.loader(), f.pilots, &fakeSMS{err: errors.New("twilio down")}, domain.InProgressBriefedOrTrained, echo)
	_, err = n.SendProgressSummary(context.Background(), "p1", "", "en-US")
	assert.ErrorContains(t, err, "twilio down")
}
