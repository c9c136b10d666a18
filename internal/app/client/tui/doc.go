// Package tui терминальный интерфейс поверх моделей представления из
// пакета view, построенный на bubbletea.
//
// Экраны следуют за Gate:
//  1. [LoginState] : форма входа
//  2. [RegisterState] : форма регистрации
//  3. [VideosState] : список видео, просмотр, удаление, обновление
//  4. [UploadState] : название и путь к файлу
//  5. [ConfirmState] : подтверждение удаления
//
// Модели уведомляют подписчиков из той горутины, где изменились;
// [Run] пересылает уведомления в программу через Program.Send.
package tui
