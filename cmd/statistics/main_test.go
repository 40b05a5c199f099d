package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postdigester/donation-backend/internal/donation"
	"github.com/postdigester/donation-backend/internal/donation/service"
	"github.com/postdigester/donation-backend/internal/donor"
	"github.com/postdigester/donation-backend/internal/models"
)

func TestWriteStatistics(t *testing.T) {
	ctx := context.Background()
	svc := service.NewMemoryService()

	var buf bytes.Buffer
	require.NoError(t, writeStatistics(ctx, &buf, svc, false))
	require.JSONEq(t, `{}`, buf.String())

	for _, d := range []donation.Donation{
		{"category": "food", "amount": 10.0},
		{"category": "food", "amount": 5.0},
		{"category": "cash", "amount": 20.0},
	} {
		_, err := svc.Create(ctx, d)
		require.NoError(t, err)
	}

	buf.Reset()
	require.NoError(t, writeStatistics(ctx, &buf, svc, true))
	var got donation.Statistics
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.NotNil(t, got.TotalDonationSum)
	require.Equal(t, 35.0, *got.TotalDonationSum)
	require.Len(t, got.Statistics, 2)
}

func TestWriteDonors(t *testing.T) {
	ctx := context.Background()
	svc := donor.NewService(donor.NewMemoryRepository())
	_, err := svc.RecordDonation(ctx, models.Donor{Email: "a@x.io", Amount: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeDonors(ctx, &buf, svc, false))
	var got []models.Donor
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, 3.0, got[0].Amount)
}

func TestRootCommandFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("database"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("pretty"))
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "donors" {
			found = true
		}
	}
	require.True(t, found)
}
