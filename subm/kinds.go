package subm

import "fmt"

type FieldSpec struct {
	Name     string
	Required bool
}

// KindSpec parameterizes the submission engine for one form kind: which
// fields it accepts, whether a PDF attachment is mandatory, where uploads
// land, and how the emailed attachment is named.
type KindSpec struct {
	Kind               Kind
	Fields             []FieldSpec
	RequiresAttachment bool
	UploadSubDir       string
	ReviewStatuses     []string
	AttachmentName     func(p Payload) string
}

func (ks KindSpec) AllowsReviewStatus(status string) bool {
	for _, s := range ks.ReviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var partnerFields = []FieldSpec{
	{Name: "firstName", Required: true},
	{Name: "lastName", Required: true},
	{Name: "address", Required: true},
	{Name: "city", Required: true},
	{Name: "state", Required: true},
	{Name: "contactNumber", Required: true},
	{Name: "email", Required: true},
	{Name: "desiredLocation", Required: true},
	{Name: "pincode", Required: true},
	{Name: "vehiclesOwned"},
	{Name: "hasOwnSpace"},
	{Name: "areaSqFt", Required: true},
}

var kindRegistry = map[Kind]KindSpec{
	KindRetailPartner: {
		Kind:               KindRetailPartner,
		Fields:             partnerFields,
		RequiresAttachment: true,
		UploadSubDir:       "applications",
		ReviewStatuses:     []string{"new", "reviewed", "contacted", "rejected"},
		AttachmentName: func(p Payload) string {
			return fmt.Sprintf("Application_%s_%s.pdf", p.Get("firstName"), p.Get("lastName"))
		},
	},
	KindFranchise: {
		Kind:               KindFranchise,
		Fields:             partnerFields,
		RequiresAttachment: true,
		UploadSubDir:       "applications",
		ReviewStatuses:     []string{"new", "reviewed", "contacted", "rejected"},
		AttachmentName: func(p Payload) string {
			return fmt.Sprintf("Application_%s_%s.pdf", p.Get("firstName"), p.Get("lastName"))
		},
	},
	KindCareer: {
		Kind: KindCareer,
		Fields: []FieldSpec{
			{Name: "firstName", Required: true},
			{Name: "lastName", Required: true},
			{Name: "mobile", Required: true},
			{Name: "email", Required: true},
			{Name: "employeeStatus", Required: true},
			{Name: "position", Required: true},
			{Name: "currentCTC"},
			{Name: "expectedCTC"},
			{Name: "totalExperience", Required: true},
			{Name: "immediateStart", Required: true},
			{Name: "relocation", Required: true},
			{Name: "jobId"},
		},
		RequiresAttachment: true,
		UploadSubDir:       "careers",
		ReviewStatuses:     []string{"new", "reviewed", "shortlisted", "contacted", "rejected"},
		AttachmentName: func(p Payload) string {
			return fmt.Sprintf("Resume_%s_%s.pdf", p.Get("firstName"), p.Get("lastName"))
		},
	},
	KindInstitute: {
		Kind: KindInstitute,
		Fields: []FieldSpec{
			{Name: "fullName", Required: true},
			{Name: "fathersName", Required: true},
			{Name: "currentAddress", Required: true},
			{Name: "residentialAddress", Required: true},
			{Name: "city", Required: true},
			{Name: "state", Required: true},
			{Name: "contactNo", Required: true},
			{Name: "email", Required: true},
			{Name: "gender", Required: true},
			{Name: "instituteName", Required: true},
			{Name: "yearOfPassing", Required: true},
			{Name: "board", Required: true},
			{Name: "percentageObtained", Required: true},
			{Name: "officeName"},
			{Name: "officeYearOfPassing"},
			{Name: "officeBoard"},
			{Name: "officePercentageObtained"},
			{Name: "place", Required: true},
			{Name: "date", Required: true},
			{Name: "reference"},
		},
		RequiresAttachment: true,
		UploadSubDir:       "marksheets",
		ReviewStatuses:     []string{"new", "reviewed", "admitted", "rejected"},
		AttachmentName: func(p Payload) string {
			return fmt.Sprintf("Marksheet_%s.pdf", p.Get("fullName"))
		},
	},
	KindEnquiry: {
		Kind: KindEnquiry,
		Fields: []FieldSpec{
			{Name: "fullName", Required: true},
			{Name: "email", Required: true},
			{Name: "phone", Required: true},
			{Name: "query"},
			{Name: "message", Required: true},
			{Name: "serviceName", Required: true},
		},
		// enquiries may carry an attachment but do not require one
		RequiresAttachment: false,
		UploadSubDir:       "enquiries",
		ReviewStatuses:     []string{"new", "contacted", "resolved"},
		AttachmentName: func(p Payload) string {
			return fmt.Sprintf("Enquiry_%s.pdf", p.Get("fullName"))
		},
	},
}

// Spec returns the registry entry for a kind.
func Spec(kind Kind) (KindSpec, bool) {
	spec, ok := kindRegistry[kind]
	return spec, ok
}

func Kinds() []Kind {
	return []Kind{KindRetailPartner, KindFranchise, KindCareer, KindInstitute, KindEnquiry}
}

// UploadSubDirs lists the distinct upload subdirectories of all kinds.
func UploadSubDirs() []string {
	seen := map[string]bool{}
	dirs := make([]string, 0, len(kindRegistry))
	for _, kind := range Kinds() {
		dir := kindRegistry[kind].UploadSubDir
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
