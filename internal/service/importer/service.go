package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/observability/telemetry"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

// DefaultDepartment is assigned to rows whose department column is blank.
const DefaultDepartment = "Operations"

// Result summarizes a completed CSV import batch.
type Result struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
}

// Service reads a CSV roster and registers each row as an employee on the
// backend. The import aborts on the first failing row so the caller can fix
// the file and re-run it.
type Service struct {
	gateway ports.BackendGateway
	log     *zap.Logger
}

func NewService(gateway ports.BackendGateway, log *zap.Logger) *Service {
	return &Service{gateway: gateway, log: log}
}

// Import parses the roster and pushes rows one at a time. On a row failure it
// returns the 1-based data row number and how many rows already went through.
func (s *Service) Import(ctx context.Context, token, agentID string, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	imported := 0
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: malformed csv record (%d imported): %w", row, imported, err)
		}

		emp, err := buildEmployee(cols, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w (%d imported)", row, err, imported)
		}

		if _, err := s.gateway.AddEmployee(ctx, token, agentID, emp); err != nil {
			return nil, fmt.Errorf("row %d: %w (%d imported)", row, err, imported)
		}
		imported++
		telemetry.EmployeesImportedTotal.Inc()
	}

	if imported == 0 {
		return nil, fmt.Errorf("csv file has no data rows")
	}

	s.log.Info("Roster import completed",
		zap.String("batch_id", batchID),
		zap.String("agent_id", agentID),
		zap.Int("imported", imported),
	)
	return &Result{BatchID: batchID, Imported: imported}, nil
}

type columnMap struct {
	firstName    int
	lastName     int
	phone        int
	email        int
	hireDate     int
	managerName  int
	siteLocation int
	department   int
}

// mapColumns resolves header names case-insensitively. Required columns are
// first_name, last_name and phone; the rest are optional.
func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{
		firstName: -1, lastName: -1, phone: -1, email: -1,
		hireDate: -1, managerName: -1, siteLocation: -1, department: -1,
	}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "first_name", "firstname":
			cols.firstName = i
		case "last_name", "lastname":
			cols.lastName = i
		case "phone", "phone_number":
			cols.phone = i
		case "email":
			cols.email = i
		case "hire_date":
			cols.hireDate = i
		case "manager_name", "manager":
			cols.managerName = i
		case "site_location", "site":
			cols.siteLocation = i
		case "department":
			cols.department = i
		}
	}

	var missing []string
	if cols.firstName < 0 {
		missing = append(missing, "first_name")
	}
	if cols.lastName < 0 {
		missing = append(missing, "last_name")
	}
	if cols.phone < 0 {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("csv header missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func buildEmployee(cols columnMap, record []string) (domain.Employee, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	emp := domain.Employee{
		FirstName:    field(cols.firstName),
		LastName:     field(cols.lastName),
		Phone:        field(cols.phone),
		Email:        field(cols.email),
		HireDate:     field(cols.hireDate),
		ManagerName:  field(cols.managerName),
		SiteLocation: field(cols.siteLocation),
		Department:   field(cols.department),
	}

	if emp.FirstName == "" {
		return emp, fmt.Errorf("first_name is required")
	}
	if emp.LastName == "" {
		return emp, fmt.Errorf("last_name is required")
	}
	if emp.Phone == "" {
		return emp, fmt.Errorf("phone is required")
	}
	if emp.Department == "" {
		emp.Department = DefaultDepartment
	}
	return emp, nil
}
