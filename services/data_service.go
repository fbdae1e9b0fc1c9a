// File: /services/data_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"triptracker-api/activeslot"
	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

// DataService is the import/export boundary: CSV round-trip for trips,
// customers and vehicles, a full multi-sheet workbook export, and the
// clear-everything operation. It only consumes GetAll and ClearAndAdd.
type DataService struct {
	trips     *repositories.Store[models.Trip]
	customers *repositories.Store[models.Customer]
	vehicles  *repositories.Store[models.Vehicle]
	reminders *repositories.Store[models.Reminder]
	reports   *repositories.Store[models.Report]
	prefs     *repositories.Store[models.Preference]
	slot      *activeslot.Slot
	log       *logrus.Logger
}

func NewDataService(db *gorm.DB, slot *activeslot.Slot, log *logrus.Logger) *DataService {
	return &DataService{
		trips:     repositories.NewStore[models.Trip](db, database.TripsStore),
		customers: repositories.NewStore[models.Customer](db, database.CustomersStore),
		vehicles:  repositories.NewStore[models.Vehicle](db, database.VehiclesStore),
		reminders: repositories.NewStore[models.Reminder](db, database.RemindersStore),
		reports:   repositories.NewStore[models.Report](db, database.ReportsStore),
		prefs:     repositories.NewStore[models.Preference](db, database.PreferencesStore),
		slot:      slot,
		log:       log,
	}
}

// tripCSVRow matches the fixed trips export header set.
type tripCSVRow struct {
	ID          uint   `csv:"id"`
	User        string `csv:"user"`
	Vehicle     string `csv:"vehicle"`
	StartKm     int    `csv:"startKm"`
	EndKm       int    `csv:"endKm"`
	Customer    string `csv:"customer"`
	Purpose     string `csv:"purpose"`
	WorkDetails string `csv:"workDetails"`
	StartTime   string `csv:"startTime"`
	EndTime     string `csv:"endTime"`
	Date        string `csv:"date"`
	Status      string `csv:"status"`
}

// customerCSVRow flattens the nested contacts into a JSON column.
type customerCSVRow struct {
	ID           uint   `csv:"id"`
	Name         string `csv:"name"`
	Address      string `csv:"address"`
	ContactsJSON string `csv:"contacts_json"`
}

type vehicleCSVRow struct {
	ID        uint   `csv:"id"`
	Name      string `csv:"name"`
	CurrentKm int    `csv:"currentKm"`
}

// ExportTripsCSV renders all trips with the fixed column header set.
func (s *DataService) ExportTripsCSV(ctx context.Context) ([]byte, error) {
	trips, err := s.trips.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]tripCSVRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, tripCSVRow{
			ID:          t.ID,
			User:        t.User,
			Vehicle:     t.Vehicle,
			StartKm:     t.StartKm,
			EndKm:       t.EndKm,
			Customer:    t.Customer,
			Purpose:     t.Purpose,
			WorkDetails: t.WorkDetails,
			StartTime:   formatTime(t.StartTime),
			EndTime:     formatTimePtr(t.EndTime),
			Date:        formatTime(t.Date),
			Status:      t.Status,
		})
	}
	return gocsv.MarshalBytes(&rows)
}

func (s *DataService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	customers, err := s.customers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]customerCSVRow, 0, len(customers))
	for _, c := range customers {
		contacts := c.Contacts
		if contacts == nil {
			contacts = models.ContactList{}
		}
		encoded, err := json.Marshal(contacts)
		if err != nil {
			return nil, fmt.Errorf("encode contacts for customer %d: %w", c.ID, err)
		}
		rows = append(rows, customerCSVRow{
			ID:           c.ID,
			Name:         c.Name,
			Address:      c.Address,
			ContactsJSON: string(encoded),
		})
	}
	return gocsv.MarshalBytes(&rows)
}

func (s *DataService) ExportVehiclesCSV(ctx context.Context) ([]byte, error) {
	vehicles, err := s.vehicles.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]vehicleCSVRow, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, vehicleCSVRow{ID: v.ID, Name: v.Name, CurrentKm: v.CurrentKm})
	}
	return gocsv.MarshalBytes(&rows)
}

// ImportTripsCSV replaces the trips store with the file's rows. Keys are
// reassigned by the store.
func (s *DataService) ImportTripsCSV(ctx context.Context, data []byte) (int, error) {
	var rows []tripCSVRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return 0, fmt.Errorf("parse trips csv: %w", err)
	}

	trips := make([]models.Trip, 0, len(rows))
	for _, row := range rows {
		trip := models.Trip{
			Type:        models.TripTypeTravel,
			Status:      row.Status,
			User:        defaultString(row.User, "Unknown"),
			Vehicle:     defaultString(row.Vehicle, "Unknown"),
			StartKm:     row.StartKm,
			EndKm:       row.EndKm,
			Customer:    defaultString(row.Customer, "Unknown"),
			Purpose:     row.Purpose,
			WorkDetails: row.WorkDetails,
			StartTime:   parseTime(row.StartTime),
			Date:        parseTime(row.Date),
		}
		if trip.Status == "" {
			trip.Status = models.TripStatusCompleted
		}
		if trip.WorkDetails != "" && row.Vehicle == "" {
			trip.Type = models.TripTypeOffice
		}
		if end := parseTime(row.EndTime); !end.IsZero() {
			trip.EndTime = &end
		}
		trips = append(trips, trip)
	}
	return s.trips.ClearAndAdd(ctx, trips)
}

func (s *DataService) ImportCustomersCSV(ctx context.Context, data []byte) (int, error) {
	var rows []customerCSVRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return 0, fmt.Errorf("parse customers csv: %w", err)
	}

	customers := make([]models.Customer, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		contacts := models.ContactList{}
		if row.ContactsJSON != "" {
			if err := json.Unmarshal([]byte(row.ContactsJSON), &contacts); err != nil {
				s.log.Warnf("customer %q: unreadable contacts_json, importing without contacts", row.Name)
				contacts = models.ContactList{}
			}
		}
		customers = append(customers, models.Customer{
			Name:     row.Name,
			Address:  row.Address,
			Contacts: contacts,
		})
	}
	return s.customers.ClearAndAdd(ctx, customers)
}

func (s *DataService) ImportVehiclesCSV(ctx context.Context, data []byte) (int, error) {
	var rows []vehicleCSVRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return 0, fmt.Errorf("parse vehicles csv: %w", err)
	}

	vehicles := make([]models.Vehicle, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		vehicles = append(vehicles, models.Vehicle{Name: row.Name, CurrentKm: row.CurrentKm})
	}
	return s.vehicles.ClearAndAdd(ctx, vehicles)
}

// ExportWorkbook renders every store onto its own sheet of one XLSX file.
func (s *DataService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	trips, err := s.trips.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Trips",
		[]interface{}{"ID", "Type", "Status", "User", "Vehicle", "Start KM", "End KM", "Customer", "Purpose", "Work Details", "Start Time", "End Time", "Date"},
		len(trips), func(i int) []interface{} {
			t := trips[i]
			return []interface{}{t.ID, t.Type, t.Status, t.User, t.Vehicle, t.StartKm, t.EndKm, t.Customer, t.Purpose, t.WorkDetails, formatTime(t.StartTime), formatTimePtr(t.EndTime), formatTime(t.Date)}
		}); err != nil {
		return nil, err
	}

	customers, err := s.customers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Customers",
		[]interface{}{"ID", "Name", "Address", "Contacts"},
		len(customers), func(i int) []interface{} {
			c := customers[i]
			contacts := ""
			for j, contact := range c.Contacts {
				if j > 0 {
					contacts += "; "
				}
				contacts += contact.Person + " " + contact.Number
			}
			return []interface{}{c.ID, c.Name, c.Address, contacts}
		}); err != nil {
		return nil, err
	}

	vehicles, err := s.vehicles.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Vehicles",
		[]interface{}{"ID", "Name", "License Plate", "Current KM"},
		len(vehicles), func(i int) []interface{} {
			v := vehicles[i]
			return []interface{}{v.ID, v.Name, v.LicensePlate, v.CurrentKm}
		}); err != nil {
		return nil, err
	}

	reminders, err := s.reminders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Reminders",
		[]interface{}{"ID", "Type", "Customer", "Purpose", "Reminder Date", "Status"},
		len(reminders), func(i int) []interface{} {
			r := reminders[i]
			return []interface{}{r.ID, r.Type, r.Customer, r.Purpose, r.ReminderDate, r.Status}
		}); err != nil {
		return nil, err
	}

	reports, err := s.reports.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Reports",
		[]interface{}{"ID", "Trip ID", "Device Type", "Model", "Brand", "Serial Number", "Details", "Photos", "Timestamp"},
		len(reports), func(i int) []interface{} {
			r := reports[i]
			return []interface{}{r.ID, r.TripID, r.DeviceType, r.Model, r.Brand, r.SerialNumber, r.Details, len(r.Photos), formatTime(r.Timestamp)}
		}); err != nil {
		return nil, err
	}

	prefs, err := s.prefs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Preferences",
		[]interface{}{"Key", "Value"},
		len(prefs), func(i int) []interface{} {
			return []interface{}{prefs[i].ID, prefs[i].Value}
		}); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ClearAll wipes every store and discards any in-progress activity.
// Each store clears in its own transaction; a failure stops the sweep with
// earlier stores already cleared.
func (s *DataService) ClearAll(ctx context.Context) error {
	if err := s.trips.Clear(ctx); err != nil {
		return err
	}
	if err := s.customers.Clear(ctx); err != nil {
		return err
	}
	if err := s.vehicles.Clear(ctx); err != nil {
		return err
	}
	if err := s.reminders.Clear(ctx); err != nil {
		return err
	}
	if err := s.reports.Clear(ctx); err != nil {
		return err
	}
	if err := s.prefs.Clear(ctx); err != nil {
		return err
	}
	if err := s.slot.Discard(); err != nil && !errors.Is(err, activeslot.ErrNoActiveActivity) {
		return err
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []interface{}, rows int, row func(i int) []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
