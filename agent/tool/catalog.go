package tool

import (
	"github.com/cloudwego/eino/schema"
)

const (
	ToolRecordUserDetails     = "record_user_details"
	ToolRecordUnknownQuestion = "record_unknown_question"
)

// Infos lists the function tools exposed to the model. The schemas mirror
// what the concierge prompt instructs the model to call.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolRecordUserDetails,
			Desc: "Use this tool to record that a user is interested in being in touch and provided an email address",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"email": {Type: schema.String, Desc: "The email address of this user", Required: true},
				"name":  {Type: schema.String, Desc: "The user's name, if they provided it"},
				"notes": {Type: schema.String, Desc: "Any additional information about the conversation that's worth recording to give context"},
			}),
		},
		{
			Name: ToolRecordUnknownQuestion,
			Desc: "Always use this tool to record any question that couldn't be answered as you didn't know the answer",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"question": {Type: schema.String, Desc: "The question that couldn't be answered", Required: true},
			}),
		},
	}
}
