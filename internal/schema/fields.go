package schema

// Field names shared by both modeled schemas and used by the renderer.
const (
	FieldSourceIP      = "Source_IP"
	FieldDestinationIP = "Destination_IP"
	FieldSourceZone    = "Source_Zone"
)

// trafficFields is the PAN-OS 6.1 TRAFFIC layout. Positions 53-60 are
// emitted by later firmware and have no documented meaning.
var trafficFields = []string{
	"Time_Stamp",
	"Serial_Number",
	"Log_Type",
	"Subtype",
	"Repeat_count",
	"Generate_Time",
	"Source_IP",
	"Destination_IP",
	"NAT_Source_IP",
	"NAT_Destination_IP",
	"Rule_Name",
	"Source_User",
	"Destination_User",
	"Application",
	"Virtual_System",
	"Source_Zone",
	"Destination_Zone",
	"Inbound_Interface",
	"Outbound_Interface",
	"Log_Forwarding_Profile",
	"RX_time",
	"Session_ID",
	"Repeat_Count_ICMP",
	"Source_Port",
	"Destination_Port",
	"NAT_Source_Port",
	"NAT_Destingtaion_Port",
	"Flags",
	"IP_Protocol",
	"Action",
	"Bytes",
	"Bytes_Sent",
	"Bytes_Received",
	"Packets",
	"Start_Time",
	"Elapsed_Time_Sec",
	"Category",
	"Nat_Src_RESEARCH",
	"Sequence_Number",
	"Action_Flags",
	"Source_Location",
	"Destination_Location",
	"Nat_Dst_RESEARCH",
	"Packets_sent",
	"Packets_Received",
	"Session_End_Reason",
	"dg_hier_level_1",
	"dg_hier_level_2",
	"dg_hier_level_3",
	"dg_hier_level_4",
	"Virtual_System_Name",
	"Device_Name",
	"Action_Source",
	"UKNOWN0",
	"UKNOWN1",
	"UKNOWN2",
	"UKNOWN3",
	"UKNOWN4",
	"UKNOWN5",
	"UKNOWN6",
	"UKNOWN7",
}

var threatFields = []string{
	"Time_Stamp",
	"Serial_Number",
	"Log_Type",
	"Subtype",
	"Repeat_count",
	"Generated_Time",
	"Source_IP",
	"Destination_IP",
	"NAT_Source_IP",
	"NAT_Destination_IP",
	"Rule_Name",
	"Source_User",
	"Destination_User",
	"Application",
	"Virtual_System",
	"Source_Zone",
	"Destination_Zone",
	"Inbound_Interface",
	"Outbound_Interface",
	"Log_Forwarding_Profile",
	"RX_time",
	"Session_ID",
	"Repeat_Count",
	"Source_Port",
	"Destination_Port",
	"NAT_Source_Port",
	"NAT_Destination_Port",
	"Flags",
	"Protocol",
	"Action",
	"Miscellaneous",
	"Threat_ID",
	"Category",
	"Severity",
	"Direction",
	"Sequence_Number",
	"Action_Flags",
	"Source_Location",
	"Destination_Location",
	"FUTURE_USE_0",
	"Content_Type",
	"PCAP_id",
	"Filedigest",
	"Cloud",
	"URL_Index",
	"User_Agent",
	"File_Type",
	"X-Forwarded-For",
	"Referer",
	"Sender",
	"Subject",
	"Recipient",
	"Report_ID",
	"Device_Group_Hierarchy_Level_1",
	"Device_Group_Hierarchy_Level_2",
	"Device_Group_Hierarchy_Level_3",
	"Device_Group_Hierarchy_Level_4",
	"Virtual_System_Name",
	"Device_Name",
	"FUTURE_USE_1",
}

// LogTypes is every log type name a PAN firewall emits at TypeField.
// Only TRAFFIC and THREAT have schemas.
var LogTypes = []string{"TRAFFIC", "THREAT", "CONFIG", "SYSTEM", "HIP-MATCH"}

// Subtypes is the TRAFFIC subtype vocabulary.
var Subtypes = []string{"Start", "End", "Drop", "Deny"}
