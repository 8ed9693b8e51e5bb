package server

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client to server.
	MessageTypeAuth       MessageType = "auth"
	MessageTypeJoinTable  MessageType = "join_table"
	MessageTypeLeaveTable MessageType = "leave_table"
	MessageTypeListTables MessageType = "list_tables"
	MessageTypeDealHand   MessageType = "deal_hand"
	MessageTypeSetBlinds  MessageType = "set_blinds"
	MessageTypeAction     MessageType = "action"
	MessageTypeGetState   MessageType = "get_state"

	// Server to client.
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeError        MessageType = "error"
	MessageTypeTableList    MessageType = "table_list"
	MessageTypeTableJoined  MessageType = "table_joined"
	MessageTypeTableLeft    MessageType = "table_left"
	MessageTypeGameState    MessageType = "game_state"
	MessageTypeActionNeeded MessageType = "action_needed"
)

func (t MessageType) String() string { return string(t) }
