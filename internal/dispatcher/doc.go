// Package dispatcher turns key-down events into at most one executed
// shortcut action and answers the quick-tool polling query.
//
// On key-down the Controller:
//
//  1. ignores the key if a foreground window other than the main window is
//     on top (menus and dialogs own the keyboard);
//  2. finds the first binding, in registration order, that the key
//     triggers in the current context;
//  3. for a tool binding, collects every tool bound to the same chord and
//     picks one: the first visible tool that is not current, else the tool
//     after the current one, cyclically;
//  4. for a command binding, walks the window stack from the top and
//     executes the command only if the main desktop window is reached
//     before any foreground window.
//
// Quick-tool and sprite-editor bindings stop the scan but leave the event
// unconsumed; they are polled through QuickTool and the registry instead.
package dispatcher
