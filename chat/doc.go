// Package chat flattens a rendered block tree into the role-tagged
// message list an LLM client consumes, using LangChainGo's message
// types so the output plugs straight into any llms.Model.
//
// The transform walks the tree for role boundaries: a block carrying a
// role becomes one message, rendered with the caller's renderer; blocks
// without a role are transparent containers. Tools attached anywhere in
// the tree are collected into a Toolset alongside the messages.
package chat
