// models/catalog.go
package models

// Service is a document type offered by the platform (e.g., a rental
// agreement or an affidavit), rendered as a card on the landing page.
type Service struct {
	ServiceID   string `bson:"service_id" json:"service_id"`
	ServiceName string `bson:"service_name" json:"service_name"`
	Description string `bson:"description" json:"description"`
	ImgLink     string `bson:"img_link" json:"img_link"`
}

// Form is a fillable template belonging to a service. FormLink points at the
// DOCX template used for final document assembly.
type Form struct {
	FormID    string `bson:"form_id" json:"form_id"`
	ServiceID string `bson:"service_id" json:"service_id"`
	FormName  string `bson:"form_name" json:"form_name"`
	FormLink  string `bson:"form_link" json:"form_link"`
}

// ServiceForm is the joined service/form row returned by GET /api/forms.
type ServiceForm struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	FormID      string `json:"form_id"`
	FormName    string `json:"form_name"`
	FormLink    string `json:"form_link"`
}

// QuestionCategory groups the input questions of a form.
type QuestionCategory struct {
	ID   int    `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// InputQuestion is a single wizard prompt. QuesID doubles as the template
// placeholder number: the answer replaces "#<ques_id>" in the form DOCX.
type InputQuestion struct {
	QuesID     int    `bson:"ques_id" json:"ques_id"`
	FormID     string `bson:"form_id" json:"form_id"`
	CategoryID int    `bson:"category_id" json:"category_id"`
	Question   string `bson:"question" json:"question"`
	InputType  string `bson:"input_type" json:"input_type"`
}

// FormDetails bundles everything the wizard needs to render a form.
type FormDetails struct {
	Form       Form               `json:"form"`
	Categories []QuestionCategory `json:"categories"`
	Questions  []InputQuestion    `json:"questions"`
}
